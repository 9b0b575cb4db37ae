package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mintfeed/mintfeed/internal/models"
)

type postsResponse struct {
	Posts []models.Post `json:"posts"`
	Count int           `json:"count"`
}

type repliesResponse struct {
	Replies []models.Reply `json:"replies"`
	Count   int            `json:"count"`
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the post feed, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		var result postsResponse
		resp, err := apiClient().R().SetResult(&result).Get("/api/v1/posts")
		if err != nil {
			fail("could not reach server: %v", err)
		}
		if resp.IsError() {
			fail("server returned %s", resp.Status())
		}

		if output == "json" {
			printJSON(result)
			return
		}
		if len(result.Posts) == 0 {
			fmt.Println("No posts yet.")
			return
		}
		for _, p := range result.Posts {
			printPost(p)
		}
	},
}

var repliesCmd = &cobra.Command{
	Use:   "replies <post-id>",
	Short: "Show replies to a post, oldest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var result repliesResponse
		resp, err := apiClient().R().
			SetResult(&result).
			SetPathParam("id", args[0]).
			Get("/api/v1/posts/{id}/replies")
		if err != nil {
			fail("could not reach server: %v", err)
		}
		if resp.IsError() {
			fail("server returned %s", resp.Status())
		}

		if output == "json" {
			printJSON(result)
			return
		}
		if len(result.Replies) == 0 {
			fmt.Println("No replies.")
			return
		}
		for _, r := range result.Replies {
			fmt.Printf("%s  %s\n  %s\n\n", r.CreatedAt.Format("2006-01-02 15:04"), shorten(r.AuthorAddress), r.Content)
		}
	},
}

func printPost(p models.Post) {
	fmt.Printf("%s  %s  [%s]\n", p.CreatedAt.Format("2006-01-02 15:04"), shorten(p.AuthorAddress), p.ID)
	fmt.Printf("  %s\n", p.Content)
	if p.ImageURL != "" {
		fmt.Printf("  image: %s\n", p.ImageURL)
	}
	fmt.Println()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func shorten(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
