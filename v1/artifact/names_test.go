package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users.proto", "users.proto"},
		{"../../etc/users.proto", "users.proto"},
		{`C:\tmp\orders.proto`, "orders.proto"},
		{"my schema.proto", "my_schema.proto"},
		{"bad$chars!.proto", "badchars.proto"},
		{"..hidden.proto", "hidden.proto"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SanitizeFilename(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "users.txt", ".proto", "dir/", "$$$.proto.bak"} {
		_, err := SanitizeFilename(bad)
		assert.ErrorIs(t, err, ErrInvalidFilename, bad)
	}
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "users.pb", ArtifactName("users.proto"))
	assert.Equal(t, "users.pb", ArtifactName("schemas/users.proto"))
	assert.Equal(t, "users.proto", SourceName("users.pb"))
}
