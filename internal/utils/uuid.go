// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	pendingIDPrefix = "pending_"
	pendingIDSuffix = 9
)

// IDGenerator produces identifiers for locally queued visits.
type IDGenerator interface {
	Generate(now time.Time) string
}

// UUIDGenerator builds pending ids of the form
// "pending_<unix millis>_<9 random chars>". The random part is taken from
// a version 7 UUID, falling back to version 4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate(now time.Time) string {
	v, err := uuid.NewV7()
	if err != nil {
		v = uuid.New()
	}

	// the tail of a v7 uuid is random, its head is the timestamp
	random := strings.ReplaceAll(v.String(), "-", "")
	random = random[len(random)-pendingIDSuffix:]

	return pendingIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + random
}

// IsPendingID reports whether id was produced by [UUIDGenerator].
func IsPendingID(id string) bool {
	return strings.HasPrefix(id, pendingIDPrefix)
}
