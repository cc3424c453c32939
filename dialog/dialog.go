// Package dialog wraps the external helper programs the legacy API shelled
// out to: text-to-speech, file pickers and input boxes.
//
// Every operation resolves a helper binary at call time and fails with
// ErrMissingTool when none is installed; nothing here is required for the
// core drawing library to work. Where the legacy API returned heap strings
// the caller had to release, these functions return ordinary Go strings;
// an empty string plus a non-nil error is the failure sentinel.
package dialog

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var (
	// ErrMissingTool is returned when no suitable helper program is
	// installed for the requested operation.
	ErrMissingTool = errors.New("dialog: no suitable helper program found")

	// ErrCancelled is returned when the user dismissed a dialog.
	ErrCancelled = errors.New("dialog: cancelled by user")
)

// lookPath is swapped by tests.
var lookPath = exec.LookPath

// firstTool returns the first installed binary from candidates.
func firstTool(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if p, err := lookPath(c); err == nil {
			return p, true
		}
	}
	return "", false
}

// Say speaks text with the platform text-to-speech engine.
func Say(text string) error {
	var names []string
	if runtime.GOOS == "darwin" {
		names = []string{"say"}
	} else {
		names = []string{"espeak-ng", "espeak", "festival"}
	}
	tool, ok := firstTool(names...)
	if !ok {
		return ErrMissingTool
	}

	var cmd *exec.Cmd
	if strings.HasSuffix(tool, "festival") {
		cmd = exec.Command(tool, "--tts")
		cmd.Stdin = strings.NewReader(text)
	} else {
		cmd = exec.Command(tool, text)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dialog: speech failed: %w", err)
	}
	return nil
}

// SelectDocument shows the platform file picker and returns the chosen
// path. ErrCancelled is returned when the user dismissed the picker.
func SelectDocument() (string, error) {
	if runtime.GOOS == "darwin" {
		return runPicker("osascript", "-e",
			`POSIX path of (choose file with prompt "Select a document")`)
	}
	if tool, ok := firstTool("zenity"); ok {
		return runPicker(tool, "--file-selection")
	}
	if tool, ok := firstTool("kdialog"); ok {
		return runPicker(tool, "--getopenfilename")
	}
	return "", ErrMissingTool
}

// InputBox shows a single-line text prompt and returns the entered string.
func InputBox(title, prompt string) (string, error) {
	if tool, ok := firstTool("zenity"); ok {
		return runPicker(tool, "--entry", "--title", title, "--text", prompt)
	}
	if tool, ok := firstTool("kdialog"); ok {
		return runPicker(tool, "--title", title, "--inputbox", prompt)
	}
	return "", ErrMissingTool
}

// PasswordBox shows a masked text prompt and returns the entered string.
func PasswordBox(title string) (string, error) {
	if tool, ok := firstTool("zenity"); ok {
		return runPicker(tool, "--password", "--title", title)
	}
	if tool, ok := firstTool("kdialog"); ok {
		return runPicker(tool, "--title", title, "--password", "")
	}
	return "", ErrMissingTool
}

// runPicker runs a dialog helper and trims its stdout. A non-zero exit is
// reported as cancellation, which is how zenity and kdialog signal it.
func runPicker(tool string, args ...string) (string, error) {
	out, err := exec.Command(tool, args...).Output()
	if err != nil {
		return "", ErrCancelled
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// ReadDocument reads a text file into memory.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("dialog: read document: %w", err)
	}
	return string(data), nil
}

// RemoveDocument deletes a file.
func RemoveDocument(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("dialog: remove document: %w", err)
	}
	return nil
}
