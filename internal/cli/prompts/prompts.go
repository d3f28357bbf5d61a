package prompts

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PromptToken prompts for an access token (hidden input)
func PromptToken() (string, error) {
	fmt.Print("Access token: ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return string(token), nil
}
