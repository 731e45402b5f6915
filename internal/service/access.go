package service

import "github.com/SACHINKATHAR2005/viralprompts/models"

// CanView reports whether viewerID may see the prompt's card: metadata and
// counters only, never the prompt text, which is disclosed solely through
// the copy path. The follower check is resolved by the caller so this stays
// a pure decision.
//
// Rules, in order: the creator and admins always may; private prompts admit
// nobody else; followers-only prompts admit followers of the creator;
// public prompts admit everyone.
func CanView(prompt models.Prompt, viewerID int64, isAdmin, isFollower bool) bool {
	if isAdmin || prompt.IsOwnedBy(viewerID) {
		return true
	}

	switch prompt.Privacy {
	case models.PrivacyPublic:
		return true
	case models.PrivacyFollowers:
		return isFollower
	default:
		return false
	}
}

// CanCopy reports whether viewerID may obtain the raw prompt text for
// clipboard use. Copy implies view, plus the payment gate for paid prompts.
func CanCopy(prompt models.Prompt, viewerID int64, isAdmin, isFollower, paymentVerified bool) bool {
	if !CanView(prompt, viewerID, isAdmin, isFollower) {
		return false
	}
	if prompt.IsPaid && !prompt.IsOwnedBy(viewerID) && !isAdmin {
		return paymentVerified
	}

	return true
}

// CanModify reports whether userID may update or delete the prompt.
// Only the creator and admins qualify; privacy level is irrelevant.
func CanModify(prompt models.Prompt, userID int64, isAdmin bool) bool {
	return isAdmin || prompt.IsOwnedBy(userID)
}
