package feed

// Nudge types
const (
	NudgeNoFollows     = "no_follows"
	NudgeNoRecentPosts = "no_recent_posts"
)

// adviseEmpty classifies an empty page. A viewer with no follows is pointed at
// discovery; a viewer whose societies are quiet is encouraged to follow more.
// Callers must only invoke this for empty merges.
func adviseEmpty(followedSocieties int) *Nudge {
	if followedSocieties == 0 {
		return &Nudge{
			Type:    NudgeNoFollows,
			Title:   "Find your people",
			Message: "You aren't following any societies yet. Explore what's happening on campus.",
			Action:  "discover_societies",
		}
	}
	return &Nudge{
		Type:    NudgeNoRecentPosts,
		Title:   "It's quiet in here",
		Message: "The societies you follow haven't posted recently. Follow a few more to keep your feed fresh.",
		Action:  "follow_more_societies",
	}
}
