package testutil

import (
	"scriptbot/models"
)

// CreateTestScript creates a script record with sensible defaults
func CreateTestScript(name, gameName string, authorID int64) *models.Script {
	return &models.Script{
		Name:     name,
		GameName: gameName,
		Content:  "print('hello from " + name + "')",
		AuthorID: authorID,
	}
}
