package services

import (
	"encoding/json"

	"github.com/rct/connect/internal/app/models/dto"
)

// Coordinates are stored as serialized JSON strings inside the records, the
// same shape the document on disk has always used. These helpers translate
// between that layout and the typed DTOs.

func encodePoint(p *dto.Point) *string {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func decodePoint(s string) dto.Point {
	var p dto.Point
	if s == "" {
		return p
	}
	_ = json.Unmarshal([]byte(s), &p)
	return p
}

func decodePointRef(s *string) *dto.Point {
	if s == nil || *s == "" {
		return nil
	}
	p := decodePoint(*s)
	return &p
}

func encodePoints(points []dto.Point) string {
	if points == nil {
		points = []dto.Point{}
	}
	b, err := json.Marshal(points)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodePoints(s string) []dto.Point {
	points := []dto.Point{}
	if s == "" {
		return points
	}
	_ = json.Unmarshal([]byte(s), &points)
	return points
}
