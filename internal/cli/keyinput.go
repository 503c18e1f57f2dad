package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"ImageVault/internal/crypto"
	"ImageVault/internal/errors"
	"ImageVault/internal/keyfile"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keySource holds the key flags shared by encrypt and decrypt.
type keySource struct {
	text     string
	file     string
	stdin    bool
	generate bool
}

func (s *keySource) register(cmd *cobra.Command, allowGenerate bool) {
	cmd.Flags().StringVarP(&s.text, "key", "k", "", "Key as 44 characters of base64 (visible in shell history)")
	cmd.Flags().StringVarP(&s.file, "key-file", "K", "", "Read the key from a keyfile")
	cmd.Flags().BoolVarP(&s.stdin, "key-stdin", "P", false, "Read the key from stdin")
	if allowGenerate {
		cmd.Flags().BoolVar(&s.generate, "generate-key", false, "Generate a new key and print it")
	}
}

func (s *keySource) count() int {
	n := 0
	for _, set := range []bool{s.text != "", s.file != "", s.stdin, s.generate} {
		if set {
			n++
		}
	}
	return n
}

// resolve returns the key chosen by the flags, prompting on a terminal when
// none was given. The caller owns the key and must Close it.
func (s *keySource) resolve(cmd *cobra.Command) (*crypto.Key, error) {
	if s.count() > 1 {
		return nil, errors.NewValidationError("key", "use only one of --key, --key-file, --key-stdin, --generate-key")
	}

	switch {
	case s.text != "":
		return crypto.DecodeKey(s.text)
	case s.file != "":
		return keyfile.Load(s.file)
	case s.stdin:
		text, err := readKeyLine(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return crypto.DecodeKey(text)
	case s.generate:
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Key: %s\n", crypto.EncodeKey(key))
		fmt.Fprintf(out, "Fingerprint: %s\n", key.Fingerprint())
		fmt.Fprintln(cmd.ErrOrStderr(), "Store this key safely. It cannot be recovered.")
		return key, nil
	}

	if !isTerminal() {
		return nil, errors.ErrNoKey
	}
	text, err := readKeySecure("Key: ")
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errors.ErrNoKey
	}
	return crypto.DecodeKey(text)
}

// isTerminal returns true if stdin is a terminal (not piped/redirected).
func isTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readKeySecure reads a key from the terminal without echo.
func readKeySecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	defer crypto.SecureZero(b)
	return string(b), nil
}

// readKeyLine reads a single line from r (for piped input with -P).
func readKeyLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(io.LimitReader(r, keyfile.MaxSize)).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading key from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
