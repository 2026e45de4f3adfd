package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/mitchellh/mapstructure"
)

func randomKey() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// readFormFile reads a multipart upload into memory and returns its
// name and bytes.
func readFormFile(ctx *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return "", nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}

	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}

	return fh.Filename, data, nil
}

// decodeMapToStruct decodes a loose JSON map into a typed struct,
// returning the names of the fields that were actually present.
func decodeMapToStruct[T any](m map[string]any, t *T) ([]string, error) {
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "mapstructure",
		Metadata: &md,
		Result:   t,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode map to struct: %w", err)
	}

	return md.Keys, nil
}
