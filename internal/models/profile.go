package models

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied to freshly created accounts
const (
	StartingEmbers = 20
	StartingLevel  = 1
	DefaultAvatar  = "warrior"
	DefaultTitle   = "Novice"
	DefaultTheme   = "pixel-dark-fantasy"
)

// StarterAvatars are the avatars offered at sign-up.
var StarterAvatars = []string{DefaultAvatar, "guardian", "mage"}

// IsStarterAvatar reports whether avatar may be picked at sign-up. Empty means the default.
func IsStarterAvatar(avatar string) bool {
	if avatar == "" {
		return true
	}
	for _, a := range StarterAvatars {
		if a == avatar {
			return true
		}
	}
	return false
}

// starterItems are cosmetics every player owns without buying them.
var starterItems = map[string]ShopItem{
	"theme-" + DefaultTheme:   {ID: "theme-" + DefaultTheme, Name: "Pixel Dark Fantasy Theme", Category: CategoryTheme, Rarity: "common"},
	"avatar-" + DefaultAvatar: {ID: "avatar-" + DefaultAvatar, Name: "Warrior Avatar", Category: CategoryAvatar, Rarity: "common"},
	"avatar-guardian":         {ID: "avatar-guardian", Name: "Guardian Avatar", Category: CategoryAvatar, Rarity: "common"},
	"avatar-mage":             {ID: "avatar-mage", Name: "Mage Avatar", Category: CategoryAvatar, Rarity: "common"},
	"title-novice":            {ID: "title-novice", Name: DefaultTitle, Category: CategoryTitle, Rarity: "common"},
}

// StarterItem looks up a cosmetic that needs no purchase.
func StarterItem(id string) (ShopItem, bool) {
	it, ok := starterItems[id]
	return it, ok
}

// IsStarterItem reports whether the item is owned by every player.
func IsStarterItem(id string) bool {
	_, ok := starterItems[id]
	return ok
}

// NewUserProfile builds a profile with the starting balance and open privacy flags.
func NewUserProfile(uid, username, email, avatar string, now time.Time) *UserProfile {
	if avatar == "" {
		avatar = DefaultAvatar
	}
	return &UserProfile{
		UID:           uid,
		Username:      username,
		Email:         email,
		Role:          RolePlayer,
		Level:         StartingLevel,
		Embers:        StartingEmbers,
		Avatar:        avatar,
		Title:         DefaultTitle,
		EquippedTheme: DefaultTheme,
		Privacy: Privacy{
			AllowFriendRequests: true,
			ShowLoreToFriends:   true,
			PublicLeaderboard:   true,
		},
		CreatedAt: now,
	}
}

// RunningAccuracy folds one attempt into an average over n previous attempts.
func RunningAccuracy(old float64, n int, attempt float64) float64 {
	if n < 0 {
		n = 0
	}
	return (old*float64(n) + attempt) / float64(n+1)
}

// ApplyTrial credits a rewarded trial to the profile.
// The accuracy average must be folded before QuizzesDone moves.
func (u *UserProfile) ApplyTrial(attemptAccuracy float64, earned int64) {
	u.Stats.Accuracy = RunningAccuracy(u.Stats.Accuracy, u.Stats.QuizzesDone, attemptAccuracy)
	u.Stats.QuizzesDone++
	u.Stats.TotalEmbersEarned += earned
	u.Embers += earned
}

// RecordLogin updates the daily login streak. Days are compared in UTC.
func (u *UserProfile) RecordLogin(now time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	if u.LastLogin == nil {
		u.StreakDays = 1
	} else {
		last := u.LastLogin.UTC().Truncate(24 * time.Hour)
		switch today.Sub(last) {
		case 0:
			if u.StreakDays == 0 {
				u.StreakDays = 1
			}
		case 24 * time.Hour:
			u.StreakDays++
		default:
			u.StreakDays = 1
		}
	}
	t := now.UTC()
	u.LastLogin = &t
}

// Validate checks a profile decoded from a store.
func (u *UserProfile) Validate() error {
	if u.UID == "" || u.Username == "" {
		return fmt.Errorf("%w: user without identity", ErrCorruptRecord)
	}
	if u.Role != RolePlayer && u.Role != RoleAdmin {
		return fmt.Errorf("%w: user %s has role %q", ErrCorruptRecord, u.UID, u.Role)
	}
	if u.Embers < 0 || u.Stats.QuizzesDone < 0 || u.Stats.Accuracy < 0 || u.Stats.Accuracy > 100 {
		return fmt.Errorf("%w: user %s has invalid stats", ErrCorruptRecord, u.UID)
	}
	return nil
}

// Equip applies a cosmetic to the profile. Themes and avatars store the item id
// without its category prefix; titles store the display name.
func (u *UserProfile) Equip(item ShopItem) error {
	switch item.Category {
	case CategoryTheme:
		u.EquippedTheme = strings.TrimPrefix(item.ID, "theme-")
	case CategoryAvatar:
		u.Avatar = strings.TrimPrefix(item.ID, "avatar-")
	case CategoryTitle:
		u.Title = item.Name
	default:
		return ErrNotEquippable
	}
	return nil
}
