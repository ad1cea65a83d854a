// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUsable reports whether token should be attached to API calls.
//
// The agent does not hold the signing key, so the token is parsed without
// signature verification and only its exp claim is inspected:
//   - empty token: false
//   - token that is not a JWT (opaque): true, the server decides
//   - JWT whose exp is at or before now: false
//   - any other JWT: true
func TokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	exp, err := tokenExpiry(token)
	if err != nil || exp.IsZero() {
		return true
	}

	return now.Before(exp)
}

func tokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}

	return exp.Time, nil
}

// ParseUserIDFromJWT extracts the numeric subject of tokenString without
// verifying its signature. Used for log context only.
func ParseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
