package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/hostforge/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// answersFileExists checks if the output file already exists.
	answersFileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runInitWizard collects provisioning inputs interactively.
	runInitWizard = runWizard

	// writeAnswers writes the answers file.
	writeAnswers = config.WriteAnswers
)

// Init runs the input wizard and writes the result to an answers file.
func Init(ctx context.Context, outputPath string) error {
	if answersFileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printInitWelcome()

	req, err := runInitWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeAnswers(req, outputPath); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}

	printInitSuccess(outputPath, req)

	return nil
}

// printInitWelcome prints the welcome message.
func printInitWelcome() {
	fmt.Println()
	fmt.Println("hostforge - single-host service provisioning")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("This wizard collects the inputs for provisioning and saves them")
	fmt.Println("to an answers file for unattended runs.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, req *config.Request) {
	fmt.Println()
	fmt.Println("Answers saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Host Summary")
	fmt.Println("------------")
	fmt.Printf("  IP Address: %s\n", req.IPAddress)
	fmt.Printf("  Domain:     %s\n", req.Domain)
	fmt.Printf("  Share User: %s\n", req.SambaUsername)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed (it contains passwords in plain text)\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Provision the host:")
	fmt.Printf("     sudo hostforge provision -a %s\n", outputPath)
	fmt.Println()
}
