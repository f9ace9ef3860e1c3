package assetcdn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

func TestFingerprint(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		tests := []struct {
			name string
			data []byte
			want string
		}{
			{
				name: "benchmark content",
				data: []byte("Hello world content for benchmark"),
				want: `"16685a6f86e1440d65854c341980cba0a0ffa26e46d7ea29c8f8b063f0bbdaf8"`,
			},
			{
				name: "empty input",
				data: []byte{},
				want: `"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"`,
			},
			{
				name: "short input",
				data: []byte("hello"),
				want: `"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, assetcdn.Fingerprint(tt.data))
			})
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		data := []byte("same bytes, same fingerprint")
		assert.Equal(t, assetcdn.Fingerprint(data), assetcdn.Fingerprint(data))
	})

	t.Run("distinct inputs yield distinct fingerprints", func(t *testing.T) {
		assert.NotEqual(t, assetcdn.Fingerprint([]byte("b1")), assetcdn.Fingerprint([]byte("b2")))
		assert.NotEqual(t, assetcdn.Fingerprint([]byte("b1")), assetcdn.Fingerprint([]byte("b1 ")))
	})

	t.Run("quoted strong-validator form", func(t *testing.T) {
		got := assetcdn.Fingerprint([]byte("anything"))
		assert.Equal(t, byte('"'), got[0])
		assert.Equal(t, byte('"'), got[len(got)-1])
		// 64 hex chars plus two quotes
		assert.Len(t, got, 66)
	})
}
