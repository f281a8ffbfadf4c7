// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/holologin/internal/captcha"
	"github.com/holomush/holologin/pkg/errutil"
)

const sessionSeed = 424242

const englishMenu = "1. Vietnamese\n2. English\n3. Exit\nPlease choose one option: "

// session drives the root command with a scripted stdin.
type session struct {
	configPath string
	args       []string
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	captchas   *captcha.Generator
}

func newSession(configYAML string, args ...string) *session {
	dir := GinkgoT().TempDir()
	path := filepath.Join(dir, "config.yaml")
	Expect(os.WriteFile(path, []byte(configYAML), 0o600)).To(Succeed())

	return &session{
		configPath: path,
		args:       args,
		stdout:     new(bytes.Buffer),
		stderr:     new(bytes.Buffer),
		captchas:   captcha.NewSeededGenerator(sessionSeed),
	}
}

func (s *session) run(lines ...string) error {
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)
	cmd.SetArgs(append([]string{"--config", s.configPath}, s.args...))
	return cmd.Execute()
}

var _ = Describe("holologin session", func() {
	const seededConfig = "captcha:\n  seed: 424242\n"

	Describe("English login", func() {
		It("re-prompts until every entry is valid and the captcha matches", func() {
			s := newSession(seededConfig)
			first, second := s.captchas.Generate(), s.captchas.Generate()

			err := s.run(
				"2",
				"12345",
				"1234567890",
				"short1",
				"abc123de",
				first+"?",
				second,
				"3",
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.stdout.String()).To(Equal(englishMenu +
				"Account number: " +
				"Account number must be exactly 10 digits.\n" +
				"Password: " +
				"Password must be between 8 and 31 characters.\n" +
				first + "\nEnter captcha: " +
				"Captcha incorrect. Please try again.\n" +
				second + "\nEnter captcha: " +
				"Login successful!\n" +
				englishMenu +
				"Exiting program...\n"))
			Expect(s.stderr.String()).To(BeEmpty())
		})

		It("allows several logins in one session", func() {
			s := newSession(seededConfig)
			first, second := s.captchas.Generate(), s.captchas.Generate()

			Expect(s.run(
				"2", "0000000000", "password1", first,
				"2", "9999999999", "password2", second,
				"3",
			)).To(Succeed())

			Expect(strings.Count(s.stdout.String(), "Login successful!\n")).To(Equal(2))
			Expect(strings.Count(s.stdout.String(), englishMenu)).To(Equal(3))
		})
	})

	Describe("Vietnamese login", func() {
		It("shows the flow in Vietnamese while the menu stays in English", func() {
			s := newSession(seededConfig)
			answer := s.captchas.Generate()

			Expect(s.run("1", "0123456789", "matkhau99", answer, "3")).To(Succeed())

			out := s.stdout.String()
			Expect(out).To(HavePrefix(englishMenu))
			Expect(out).To(ContainSubstring("Số tài khoản: Mật khẩu: " + answer + "\nNhập mã captcha: Đăng nhập thành công!\n"))
			Expect(out).To(HaveSuffix(englishMenu + "Exiting program...\n"))
		})
	})

	Describe("menu", func() {
		It("rejects choices outside 1-3 without redrawing the menu", func() {
			s := newSession(seededConfig)

			Expect(s.run("4", "-1", "two", "3")).To(Succeed())

			Expect(s.stdout.String()).To(Equal(englishMenu +
				strings.Repeat("Please enter a number within the allowed range.\n", 3) +
				"Exiting program...\n"))
		})

		It("can be shown in Vietnamese", func() {
			s := newSession(seededConfig+"menu_locale: vi\n")

			Expect(s.run("3")).To(Succeed())

			Expect(s.stdout.String()).To(Equal("1. Tiếng Việt\n2. Tiếng Anh\n3. Thoát\nVui lòng chọn một mục: Đang thoát chương trình...\n"))
		})
	})

	Describe("output spacing", func() {
		It("follows output.message_newlines from the command line", func() {
			s := newSession(seededConfig, "--message-newlines", "2")
			answer := s.captchas.Generate()

			Expect(s.run("2", "1234567890", "abcdefg1", answer, "3")).To(Succeed())

			Expect(s.stdout.String()).To(ContainSubstring("Login successful!\n\n"))
		})
	})

	Describe("input ending early", func() {
		It("fails with CONSOLE_INPUT_CLOSED", func() {
			s := newSession(seededConfig)

			err := s.run("2", "1234567890")

			Expect(err).To(HaveOccurred())
			Expect(errutil.HasCode(err, "CONSOLE_INPUT_CLOSED")).To(BeTrue())
			Expect(s.stdout.String()).To(HaveSuffix("Password: "))
		})
	})
})
