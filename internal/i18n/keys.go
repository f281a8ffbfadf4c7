// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package i18n

// Key identifies a localized message.
type Key string

// Menu keys. The menu is rendered before a language is chosen.
const (
	MenuVietnamese   Key = "menuVietnamese"
	MenuEnglish      Key = "menuEnglish"
	MenuExit         Key = "menuExit"
	MenuPrompt       Key = "menuPrompt"
	Exiting          Key = "exiting"
	ErrInvalidChoice Key = "errInvalidChoice"
)

// Login flow keys.
const (
	EnterAccountNumber  Key = "enterAccountNumber"
	EnterPassword       Key = "enterPassword"
	EnterCaptcha        Key = "enterCaptcha"
	LoginSuccess        Key = "loginSuccess"
	ErrCaptchaIncorrect Key = "errCaptchaIncorrect"
)

// Input error keys. ErrCheckInputIntLimit is shown for empty text input;
// ErrorCheckInputIntLimit for a bad or out-of-range number.
const (
	ErrorCheckInputIntLimit      Key = "errorCheckInputIntLimit"
	ErrCheckInputIntLimit        Key = "errCheckInputIntLimit"
	ErrCheckInputAccount         Key = "errCheckInputAccount"
	ErrCheckLengthPassword       Key = "errCheckLengthPassword"
	ErrCheckAlphanumericPassword Key = "errCheckAlphanumericPassword"
)

// RequiredKeys lists every key a catalog must define.
var RequiredKeys = []Key{
	MenuVietnamese,
	MenuEnglish,
	MenuExit,
	MenuPrompt,
	Exiting,
	ErrInvalidChoice,
	EnterAccountNumber,
	EnterPassword,
	EnterCaptcha,
	LoginSuccess,
	ErrCaptchaIncorrect,
	ErrorCheckInputIntLimit,
	ErrCheckInputIntLimit,
	ErrCheckInputAccount,
	ErrCheckLengthPassword,
	ErrCheckAlphanumericPassword,
}
