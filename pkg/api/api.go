// Package api defines the request and response messages of the gameochtend.v1 RPC services.
// Messages are plain structs encoded as JSON; see package apiconnect for the transport.
package api

import "github.com/mmynk/gameochtend/internal/models"

// AuthService messages.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Token   string             `json:"token"`
	Profile models.UserProfile `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string             `json:"token"`
	Profile models.UserProfile `json:"profile"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Profile models.UserProfile `json:"profile"`

	// OwnedGroups and MemberGroups split the user's groups for the profile view.
	OwnedGroups  []models.Group `json:"ownedGroups"`
	MemberGroups []models.Group `json:"memberGroups"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`

	// Photo is a base64 image data URL. Nil leaves the photo unchanged, empty removes it.
	Photo *string `json:"photo,omitempty"`
}

type UpdateProfileResponse struct {
	Profile models.UserProfile `json:"profile"`
}

// GroupService messages.

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type GroupResponse struct {
	Group models.Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupsRequest struct {
	// SelectedGroupID is the client's current selection, if any.
	SelectedGroupID string `json:"selectedGroupId,omitempty"`
}

type ListGroupsResponse struct {
	Groups []models.Group `json:"groups"`

	// SelectedGroupID is the selection after falling back to the first visible group.
	SelectedGroupID string `json:"selectedGroupId"`
}

type RenameGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddParticipantRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type AddParticipantResponse struct {
	Participant models.Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	GroupID       string `json:"groupId"`
	ParticipantID string `json:"participantId"`
}

type SetParticipantRoleRequest struct {
	GroupID       string                 `json:"groupId"`
	ParticipantID string                 `json:"participantId"`
	Role          models.ParticipantRole `json:"role"`
}

type AssignCustomRoleRequest struct {
	GroupID       string `json:"groupId"`
	ParticipantID string `json:"participantId"`

	// RoleID of an existing custom role, or empty to clear.
	RoleID string `json:"roleId"`
}

type AddCustomRoleRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
}

type AddCustomRoleResponse struct {
	Role models.CustomRole `json:"role"`
}

type RemoveCustomRoleRequest struct {
	GroupID string `json:"groupId"`
	RoleID  string `json:"roleId"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

// InvitationService messages.

type InviteRequest struct {
	GroupID string `json:"groupId"`
	Invitee string `json:"invitee"`
}

type InvitationResponse struct {
	Invitation models.Invitation `json:"invitation"`
}

type ResolveInvitationRequest struct {
	InvitationID string `json:"invitationId"`
}

type ListInvitationsRequest struct{}

type ListInvitationsResponse struct {
	Invitations []models.Invitation `json:"invitations"`
}

// ChecklistService messages.

type ListItemsRequest struct {
	GroupID string `json:"groupId"`
}

type ListItemsResponse struct {
	Items []models.ChecklistItem `json:"items"`
}

type AddItemRequest struct {
	GroupID string `json:"groupId"`
	Text    string `json:"text"`
}

type ItemResponse struct {
	Item models.ChecklistItem `json:"item"`
}

type ToggleItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct{}

type ToggleExecutorRequest struct {
	ItemID   string `json:"itemId"`
	MemberID string `json:"memberId"`
}

type ReplaceItemsRequest struct {
	GroupID string                 `json:"groupId"`
	Items   []models.ChecklistItem `json:"items"`
}

// NoteService messages.

type ListNotesRequest struct {
	GroupID string `json:"groupId"`
}

type ListNotesResponse struct {
	Notes []models.Note `json:"notes"`
}

// FileUpload is a file to attach to a new note. Data is base64 encoded in JSON.
type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type CreateNoteRequest struct {
	GroupID string       `json:"groupId"`
	Text    string       `json:"text"`
	Files   []FileUpload `json:"files,omitempty"`
}

type CreateNoteResponse struct {
	Note models.Note `json:"note"`

	// Skipped lists files that were rejected, with the reason.
	Skipped []string `json:"skipped,omitempty"`
}

type DeleteNoteRequest struct {
	NoteID string `json:"noteId"`
}

type DeleteNoteResponse struct{}

// AttendanceService messages.

type ListDatesRequest struct {
	GroupID string `json:"groupId"`
}

type ListDatesResponse struct {
	Dates []models.AttendanceDate `json:"dates"`
}

type AddDateRequest struct {
	GroupID string `json:"groupId"`
	Date    string `json:"date"`
}

type DateResponse struct {
	Date models.AttendanceDate `json:"date"`
}

type ToggleAttendanceRequest struct {
	DateID        string `json:"dateId"`
	ParticipantID string `json:"participantId"`
}

type DeleteDateRequest struct {
	DateID string `json:"dateId"`

	// SelectedDateID is the client's current selection, if any.
	SelectedDateID string `json:"selectedDateId,omitempty"`
}

type DeleteDateResponse struct {
	SelectedDateID string `json:"selectedDateId"`
}

type GetSummaryRequest struct {
	DateID string `json:"dateId"`
}

type GetSummaryResponse struct {
	Present int `json:"present"`
	Total   int `json:"total"`
}
