package domain

// Actor is an authenticated community member. The role id set comes from the
// Discord guild member lookup at login time and is not persisted.
type Actor struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	RoleIDs      []string      `json:"-"`
	Capabilities CapabilitySet `json:"capabilities"`
}

// CapabilitySet is the snapshot of permission flags resolved for a session.
// Flags are computed once at login and carried in the session token; a role
// revoked mid-session stays effective until re-login.
type CapabilitySet struct {
	Admin       bool `json:"admin"`
	Coordinator bool `json:"coordinator"`
	Storyteller bool `json:"storyteller"`
	WikiLead    bool `json:"wiki_lead"`
	WikiEditor  bool `json:"wiki_editor"`
}

// Any reports whether at least one flag is set.
func (c CapabilitySet) Any() bool {
	return c.Admin || c.Coordinator || c.Storyteller || c.WikiLead || c.WikiEditor
}

// CanBypassWikiApproval reports whether the actor may publish wiki content
// directly, skipping the submission queue.
func (c CapabilitySet) CanBypassWikiApproval() bool {
	return c.Admin || c.Storyteller || c.WikiLead
}

// CanSubmitWiki reports whether the actor may write wiki content at all,
// directly or via the queue.
func (c CapabilitySet) CanSubmitWiki() bool {
	return c.CanBypassWikiApproval() || c.WikiEditor
}

// CanDeleteWiki reports whether the actor may delete a wiki page. Editors can
// never delete: a delete has no undo and no review artifact, so it is not
// queueable the way an edit is.
func (c CapabilitySet) CanDeleteWiki() bool {
	return c.CanBypassWikiApproval()
}

// CanReviewWiki reports whether the actor may approve or deny pending
// submissions.
func (c CapabilitySet) CanReviewWiki() bool {
	return c.CanBypassWikiApproval()
}

// CanPostAnnouncement reports whether the actor may create, edit, or delete
// announcements of the given category. NEWS is admin-exclusive.
func (c CapabilitySet) CanPostAnnouncement(category AnnouncementCategory) bool {
	if c.Admin {
		return true
	}
	switch category {
	case CategoryEvent:
		return c.Coordinator
	case CategoryLore:
		return c.Storyteller
	default:
		return false
	}
}

// CanViewAdminPanel reports whether the actor sees the staff panel at all.
func (c CapabilitySet) CanViewAdminPanel() bool {
	return c.Any()
}
