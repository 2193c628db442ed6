package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"softpatch/log"
	"softpatch/patch"
	"softpatch/rom"
)

type headerMode string

const (
	headerAsk  headerMode = "ask"
	headerAuto headerMode = "auto"
	headerYes  headerMode = "yes"
	headerNo   headerMode = "no"
)

// parseHeaderMode returns the mode given on the command line, or the one
// from the configuration.
func parseHeaderMode(flag, config string) (headerMode, error) {
	s := flag
	if s == "" {
		s = config
	}
	switch m := headerMode(strings.ToLower(s)); m {
	case headerAsk, headerAuto, headerYes, headerNo:
		return m, nil
	case "":
		return headerAsk, nil
	}
	return "", fmt.Errorf("invalid headered mode %q, want ask, auto, yes or no", s)
}

const headerQuestion = `IPS patches do not record whether they target a ROM with a 512 byte
copier header, and ROM dumps exist both ways.
Does %s expect a headered ROM? If unsure answer no, and retry with yes
if the patched game does not work. [y/N] `

// askPrompt asks the user on the terminal.
type askPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *askPrompt) Headered(location string) bool {
	fmt.Fprintf(p.out, headerQuestion, filepath.Base(location))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// newHeaderPrompt returns the prompt answering for img according to mode.
func newHeaderPrompt(mode headerMode, img *rom.Image, in io.Reader, out io.Writer) patch.HeaderPrompt {
	switch mode {
	case headerYes:
		return patch.HeaderPromptFunc(func(string) bool { return true })
	case headerAuto:
		return patch.HeaderPromptFunc(func(location string) bool {
			headered := img.CopierHeader()
			log.ModCLI.InfoZ("guessed copier header").String("rom", img.Name()).Bool("headered", headered).End()
			return headered
		})
	case headerAsk:
		return &askPrompt{in: bufio.NewReader(in), out: out}
	}
	return patch.HeaderPromptFunc(func(string) bool { return false })
}
