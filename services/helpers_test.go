package services

import (
	"testing"

	"tradehub/db"
	"tradehub/db/dbtest"
)

func newRepos(t *testing.T) *db.Repositories {
	t.Helper()
	return dbtest.Repositories(t)
}

func ptr[T any](v T) *T { return &v }
