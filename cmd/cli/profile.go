package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mintfeed/mintfeed/internal/models"
)

type profileResponse struct {
	Profile models.Profile `json:"profile"`
}

var profileCmd = &cobra.Command{
	Use:   "profile <address>",
	Short: "Look up the profile owned by a wallet address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var result profileResponse
		resp, err := apiClient().R().
			SetResult(&result).
			SetPathParam("address", args[0]).
			Get("/api/v1/profiles/{address}")
		if err != nil {
			fail("could not reach server: %v", err)
		}
		if resp.StatusCode() == 404 {
			fmt.Println("No profile found for that address.")
			return
		}
		if resp.IsError() {
			fail("server returned %s", resp.Status())
		}

		if output == "json" {
			printJSON(result)
			return
		}
		p := result.Profile
		fmt.Printf("@%s  (%s)\n", p.Username, shorten(p.OwnerAddress))
		if p.Bio != "" {
			fmt.Printf("  %s\n", p.Bio)
		}
		if p.ImageURL != "" {
			fmt.Printf("  image: %s\n", p.ImageURL)
		}
		fmt.Printf("  since: %s\n", p.CreatedAt.Format("2006-01-02"))
	},
}
