package dnevnik

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIDs(t *testing.T) {
	page := readFixture(t, "userfeed.html")

	groupId, err := ExtractGroupID(page)
	require.NoError(t, err)
	require.Equal(t, "1000012345", groupId, "first class link should win")

	profileId, err := ExtractProfileID(page)
	require.NoError(t, err)
	require.Equal(t, "1000055555", profileId, "first personId should win")
}

func TestExtractIDsMissing(t *testing.T) {
	page := `<html><body><a href="https://schools.dnevnik.ru/school.aspx?school=1">school</a></body></html>`

	_, err := ExtractGroupID(page)
	require.ErrorIs(t, err, ErrNotFound)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "group id", notFound.What)

	_, err = ExtractProfileID(page)
	require.ErrorIs(t, err, ErrNotFound)
}
