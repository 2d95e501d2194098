package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imagen sintética: un degradado para que cada seed produzca pixeles distintos
func makeTestImage(t *testing.T, width, height int, seed uint8) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x) + seed,
				G: uint8(y) * seed,
				B: seed,
				A: 255,
			})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestNormalizeFaceImageProducesCanonicalSize(t *testing.T) {
	src := makeTestImage(t, 640, 480, 7)

	normalized, err := NormalizeFaceImage(src)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(normalized))
	require.NoError(t, err)
	assert.Equal(t, FaceImageWidth, img.Bounds().Dx())
	assert.Equal(t, FaceImageHeight, img.Bounds().Dy())
}

func TestNormalizeFaceImageIsDeterministic(t *testing.T) {
	src := makeTestImage(t, 640, 480, 7)

	first, err := NormalizeFaceImage(src)
	require.NoError(t, err)
	second, err := NormalizeFaceImage(src)
	require.NoError(t, err)

	assert.Equal(t, first, second, "la misma imagen de origen debe producir bytes idénticos")
}

func TestMatchFaceImageSelfMatch(t *testing.T) {
	src := makeTestImage(t, 300, 300, 3)

	reference, err := NormalizeFaceImage(src)
	require.NoError(t, err)
	probe, err := NormalizeFaceImage(src)
	require.NoError(t, err)

	assert.True(t, MatchFaceImage(probe, reference))
}

func TestMatchFaceImageDifferentSources(t *testing.T) {
	a, err := NormalizeFaceImage(makeTestImage(t, 300, 300, 3))
	require.NoError(t, err)
	b, err := NormalizeFaceImage(makeTestImage(t, 300, 300, 9))
	require.NoError(t, err)

	assert.False(t, MatchFaceImage(a, b))
}

func TestMatchFaceImageEmptyReference(t *testing.T) {
	probe, err := NormalizeFaceImage(makeTestImage(t, 300, 300, 3))
	require.NoError(t, err)

	assert.False(t, MatchFaceImage(probe, nil))
	assert.False(t, MatchFaceImage(probe, []byte{}))
}

func TestNormalizeFaceImageRejectsGarbage(t *testing.T) {
	_, err := NormalizeFaceImage([]byte("esto no es una imagen"))
	assert.ErrorIs(t, err, ErrImageUndecodable)
}
