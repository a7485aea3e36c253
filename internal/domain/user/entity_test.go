//go:build unit

package user_test

import (
	"strings"
	"testing"

	"roombook/internal/domain/user"
	"roombook/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(user.Username{}),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		expected, _ := user.NewUsername("alice")
		if diff := cmp.Diff(expected, actual.Username(), cmpOpts...); diff != "" {
			t.Errorf("Username mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.NotEmpty(t, actual.PasswordHash())
	})

	t.Run("username validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum length is accepted",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("bob") },
			},
			{
				name:   "surrounding whitespace is trimmed",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("  carol  ") },
			},
			{
				name:   "too short is rejected",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("al") },
				errIs:  user.ErrInvalidUsername,
			},
			{
				name:   "whitespace only is rejected",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("   ") },
				errIs:  user.ErrInvalidUsername,
			},
			{
				name:   "too long is rejected",
				mutate: func(b *builder.UserBuilder) { b.WithUsername(strings.Repeat("a", 51)) },
				errIs:  user.ErrInvalidUsername,
			},
		})
	})

	t.Run("reconstruct keeps identity", func(t *testing.T) {
		built, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		rebuilt := user.ReconstructUser(built.ID(), built.Username(), built.PasswordHash(), built.CreatedAt())
		assert.Equal(t, built.ID(), rebuilt.ID())
		assert.Equal(t, built.Username().Value(), rebuilt.Username().Value())
		assert.Equal(t, built.CreatedAt(), rebuilt.CreatedAt())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
