package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashpwCost int

var hashpwCmd = &cobra.Command{
	Use:   "hashpw [password]",
	Short: "Generate a bcrypt hash for a password",
	Long:  `Generate a bcrypt hash, useful when extending the seed roster with new accounts.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), hashpwCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(string(hash))
	},
}

func init() {
	hashpwCmd.Flags().IntVar(&hashpwCost, "cost", 12, "bcrypt cost factor")
}
