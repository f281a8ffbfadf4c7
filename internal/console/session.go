// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/holologin/internal/captcha"
	"github.com/holomush/holologin/internal/i18n"
	"github.com/holomush/holologin/internal/ids"
)

// Run shows the language menu until the user picks Exit. Each language
// choice runs one login flow and returns to the menu. Run returns nil after
// Exit and a CONSOLE_INPUT_CLOSED error if input ends first.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "session started", "menu_locale", c.menu.Tag().String())

	for {
		c.renderMenu()
		choice, err := c.ReadBoundedInt(ctx, c.menu, ChoiceVietnamese, ChoiceExit)
		if err != nil {
			return err
		}
		c.metrics.RecordMenuChoice(choice)
		c.logger.DebugContext(ctx, "menu choice", "choice", choice)

		switch choice {
		case ChoiceVietnamese:
			err = c.Login(ctx, c.vietnamese)
		case ChoiceEnglish:
			err = c.Login(ctx, c.english)
		case ChoiceExit:
			c.closeInput()
			c.write(c.menu.Text(i18n.Exiting) + "\n")
			c.logger.InfoContext(ctx, "session ended")
			return nil
		default:
			c.errorf("%s", c.menu.Text(i18n.ErrInvalidChoice))
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) renderMenu() {
	c.write(fmt.Sprintf("%s\n%s\n%s\n",
		c.menu.Text(i18n.MenuVietnamese),
		c.menu.Text(i18n.MenuEnglish),
		c.menu.Text(i18n.MenuExit),
	))
	c.displayMessage(c.menu, i18n.MenuPrompt)
}

// Login asks for an account number and password, then runs the captcha
// challenge until it is solved. Any well-formed account and password are
// accepted; the captcha is the only gate.
func (c *Controller) Login(ctx context.Context, cat *i18n.Catalog) error {
	locale := cat.Tag().String()
	attemptID := ids.NewAttemptID()

	ctx, span := c.tracer.Start(ctx, "console.login",
		trace.WithAttributes(
			attribute.String("locale", locale),
			attribute.String("attempt_id", attemptID.String()),
		),
	)
	defer span.End()

	logger := c.logger.With("attempt_id", attemptID.String(), "locale", locale)
	logger.InfoContext(ctx, "login started")

	c.displayMessage(cat, i18n.EnterAccountNumber)
	account, err := c.ReadAccountNumber(ctx, cat)
	if err != nil {
		span.SetStatus(codes.Error, "input closed")
		return err
	}
	logger.DebugContext(ctx, "account accepted", "account", account.String())

	c.displayMessage(cat, i18n.EnterPassword)
	if _, err := c.ReadPassword(ctx, cat); err != nil {
		span.SetStatus(codes.Error, "input closed")
		return err
	}
	logger.DebugContext(ctx, "password accepted")

	attempts, err := c.CaptchaLoop(ctx, cat)
	if err != nil {
		span.SetStatus(codes.Error, "input closed")
		return err
	}

	c.metrics.RecordLogin(locale)
	span.SetAttributes(attribute.Int("captcha_attempts", attempts))
	logger.InfoContext(ctx, "login succeeded", "captcha_attempts", attempts)
	return nil
}

// CaptchaLoop shows a fresh captcha, reads the answer and repeats until the
// answer matches exactly. It returns the number of captchas shown.
func (c *Controller) CaptchaLoop(ctx context.Context, cat *i18n.Catalog) (int, error) {
	for attempts := 1; ; attempts++ {
		challenge := c.captcha.Generate()
		c.write(challenge + "\n")
		c.displayMessage(cat, i18n.EnterCaptcha)

		answer, err := c.ReadNonEmptyString(ctx, cat)
		if err != nil {
			return attempts, err
		}

		matched := captcha.Match(challenge, answer)
		c.metrics.RecordCaptcha(matched)
		if matched {
			c.displayLine(cat, i18n.LoginSuccess)
			return attempts, nil
		}
		c.logger.DebugContext(ctx, "captcha mismatch", "event", "captcha_mismatch", "attempt", attempts)
		c.displayLine(cat, i18n.ErrCaptchaIncorrect)
	}
}
