package helper

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// Resolución canónica de las imágenes de rostro
const (
	FaceImageWidth  = 200
	FaceImageHeight = 200

	// Límite de subida: 5 MB
	MaxFaceImageSize = 5 * 1024 * 1024
)

var (
	ErrNoFaceImage      = errors.New("imagen de rostro no proporcionada")
	ErrFaceImageTooBig  = errors.New("la imagen supera el tamaño máximo de 5MB")
	ErrNotAnImage       = errors.New("el archivo no es una imagen válida")
	ErrImageUndecodable = errors.New("no se pudo decodificar la imagen")
)

// ReadFaceImage lee el campo multipart "faceImage" en memoria y valida
// tamaño y tipo MIME. Devuelve ErrNoFaceImage si el campo no viene.
func ReadFaceImage(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, ErrNoFaceImage
	}
	if fileHeader.Size > MaxFaceImageSize {
		return nil, ErrFaceImageTooBig
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("error al abrir la imagen: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("error al leer la imagen: %w", err)
	}

	if !strings.HasPrefix(mimetype.Detect(buf.Bytes()).String(), "image/") {
		return nil, ErrNotAnImage
	}
	return buf.Bytes(), nil
}

// NormalizeFaceImage convierte la imagen a su forma canónica: 200x200 px,
// remuestreo Lanczos, PNG. La comparación de rostros es igualdad exacta de
// bytes entre formas canónicas, así que este paso tiene que ser determinista.
func NormalizeFaceImage(data []byte) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, ErrImageUndecodable
	}

	resized := imaging.Resize(img, FaceImageWidth, FaceImageHeight, imaging.Lanczos)

	out := new(bytes.Buffer)
	if err := imaging.Encode(out, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error al codificar la imagen normalizada: %w", err)
	}
	return out.Bytes(), nil
}

// MatchFaceImage compara dos imágenes ya normalizadas byte a byte.
// No es un algoritmo biométrico: un solo pixel distinto rompe la igualdad.
func MatchFaceImage(probe, reference []byte) bool {
	return len(reference) > 0 && bytes.Equal(probe, reference)
}

func decodeImage(data []byte) (image.Image, error) {
	if mimetype.Detect(data).Is("image/webp") {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data))
}
