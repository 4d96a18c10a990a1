package domain

import (
	"strings"
	"time"
)

// UncategorizedFolder is used when a photo's school has no name.
const UncategorizedFolder = "Uncategorized"

// Team is a school. Its Code is the tenant key photos and users hang off.
type Team struct {
	ID        int64        `json:"id"`
	Code      string       `json:"schoolCode"`
	Name      string       `json:"name"`
	IsActive  bool         `json:"isActive"`
	CreatedBy *int64       `json:"createdBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	Users     []TeamMember `json:"users"`
}

// TeamMember is the short view of a user linked to a team.
type TeamMember struct {
	ID    int64  `json:"id"`
	Code  string `json:"userCode"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// FolderName returns the mirror folder name for a school.
func FolderName(schoolName string) string {
	if n := strings.TrimSpace(schoolName); n != "" {
		return n
	}
	return UncategorizedFolder
}
