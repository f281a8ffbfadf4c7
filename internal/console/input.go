// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"context"

	"github.com/holomush/holologin/internal/i18n"
	"github.com/holomush/holologin/internal/validation"
	"github.com/holomush/holologin/pkg/errutil"
)

// ReadBoundedInt reads lines until one parses to an integer in [lo, hi].
// Rejected lines are answered with cat's errorCheckInputIntLimit message.
// The only error returned is an input failure.
func (c *Controller) ReadBoundedInt(ctx context.Context, cat *i18n.Catalog, lo, hi int) (int, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		v, err := validation.ParseBoundedInt(line, lo, hi)
		if err == nil {
			return v, nil
		}
		c.reject(ctx, cat, err)
	}
}

// ReadNonEmptyString reads lines until one is non-empty after trimming.
func (c *Controller) ReadNonEmptyString(ctx context.Context, cat *i18n.Catalog) (string, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		s, err := validation.NonEmpty(line)
		if err == nil {
			return s, nil
		}
		c.reject(ctx, cat, err)
	}
}

// ReadAccountNumber reads lines until one is exactly ten decimal digits.
func (c *Controller) ReadAccountNumber(ctx context.Context, cat *i18n.Catalog) (validation.AccountNumber, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		account, err := validation.ParseAccountNumber(line)
		if err == nil {
			return account, nil
		}
		c.reject(ctx, cat, err)
	}
}

// ReadPassword reads non-empty lines until one satisfies the password rules.
func (c *Controller) ReadPassword(ctx context.Context, cat *i18n.Catalog) (string, error) {
	for {
		password, err := c.ReadNonEmptyString(ctx, cat)
		if err != nil {
			return "", err
		}
		err = validation.ValidatePassword(password)
		if err == nil {
			return password, nil
		}
		c.reject(ctx, cat, err)
	}
}

// reject reports a rejected entry to the user and records it.
func (c *Controller) reject(ctx context.Context, cat *i18n.Catalog, err error) {
	code := errutil.Code(err)
	c.metrics.RecordRejection(code)
	c.logger.DebugContext(ctx, "input rejected",
		"event", "input_rejected",
		"code", code,
		"locale", cat.Tag().String(),
	)
	c.displayLine(cat, rejectionKey(err))
}

// rejectionKey selects the message shown for a validation error.
func rejectionKey(err error) i18n.Key {
	switch errutil.Code(err) {
	case validation.CodeEmpty:
		return i18n.ErrCheckInputIntLimit
	case validation.CodeAccountInvalid:
		return i18n.ErrCheckInputAccount
	case validation.CodePasswordLength:
		return i18n.ErrCheckLengthPassword
	case validation.CodePasswordAlphanumeric:
		return i18n.ErrCheckAlphanumericPassword
	default:
		return i18n.ErrorCheckInputIntLimit
	}
}
