package accounts

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/sanitize"
	"github.com/mmynk/gameochtend/internal/storage"
)

// ProfileStore persists UserProfile records under user-profiles.
type ProfileStore struct {
	kv storage.KV

	// Now is the clock used for UpdatedAt.
	Now func() time.Time

	// MaxPhotoBytes caps the decoded photo payload. Zero disables the check.
	MaxPhotoBytes int64
}

// NewProfileStore creates a ProfileStore on kv.
func NewProfileStore(kv storage.KV) *ProfileStore {
	return &ProfileStore{kv: kv, Now: time.Now}
}

// Get returns the profile of userID, or a default profile named after the id.
func (s *ProfileStore) Get(ctx context.Context, userID string) (models.UserProfile, error) {
	userID = models.NormalizeUserID(userID)
	all, err := storage.Read(ctx, s.kv, storage.KeyUserProfiles, map[string]models.UserProfile{})
	if err != nil {
		return models.UserProfile{}, err
	}
	if p, ok := all[userID]; ok {
		return p, nil
	}
	return models.DefaultProfile(userID), nil
}

// Update sets the display name and, when photo is non-nil, the photo data URL.
// An empty name falls back to the user id. An empty photo string removes the photo.
func (s *ProfileStore) Update(ctx context.Context, userID, name string, photo *string) (models.UserProfile, error) {
	userID = models.NormalizeUserID(userID)
	if photo != nil && *photo != "" {
		if err := checkPhoto(*photo, s.MaxPhotoBytes); err != nil {
			return models.UserProfile{}, err
		}
	}
	name = sanitize.Text(name)
	if name == "" {
		name = userID
	}

	var updated models.UserProfile
	err := storage.Update(ctx, s.kv, storage.KeyUserProfiles, map[string]models.UserProfile{}, func(all map[string]models.UserProfile) (map[string]models.UserProfile, error) {
		if all == nil {
			all = map[string]models.UserProfile{}
		}
		p, ok := all[userID]
		if !ok {
			p = models.DefaultProfile(userID)
		}
		p.Name = name
		if photo != nil {
			p.Photo = *photo
		}
		p.UpdatedAt = s.Now().Unix()
		all[userID] = p
		updated = p
		return all, nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	return updated, nil
}

// checkPhoto accepts base64 image data URLs whose payload fits in maxBytes.
func checkPhoto(photo string, maxBytes int64) error {
	header, payload, ok := strings.Cut(photo, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("%w: photo must be a base64 image data URL", models.ErrValidation)
	}
	if maxBytes <= 0 {
		return nil
	}
	if size := int64(base64.StdEncoding.DecodedLen(len(payload))); size > maxBytes {
		return fmt.Errorf("%w: photo is %s, the limit is %s",
			models.ErrValidation, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxBytes)))
	}
	return nil
}
