package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var postImage string

func init() {
	postCmd.Flags().StringVar(&postImage, "image", "", "Path to an image to attach (jpeg/png/gif, ≤5MB)")
}

var postCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Create a new post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := apiClient().R().
			SetFormData(map[string]string{
				"kind":    "post",
				"content": args[0],
			})

		if postImage != "" {
			data, err := os.ReadFile(postImage)
			if err != nil {
				fail("could not read image: %v", err)
			}
			req.SetFileReader("image", filepath.Base(postImage), bytes.NewReader(data))
		}

		var result map[string]any
		resp, err := req.SetResult(&result).Post("/api/v1/content")
		if err != nil {
			fail("could not reach server: %v", err)
		}
		if resp.IsError() {
			fail("create failed: %s %s", resp.Status(), resp.String())
		}

		if output == "json" {
			printJSON(result)
			return
		}
		fmt.Println("Post created.")
	},
}

var replyCmd = &cobra.Command{
	Use:   "reply <post-id> <text>",
	Short: "Reply to a post",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var result map[string]any
		resp, err := apiClient().R().
			SetFormData(map[string]string{
				"kind":        "reply",
				"parent_post": args[0],
				"content":     args[1],
			}).
			SetResult(&result).
			Post("/api/v1/content")
		if err != nil {
			fail("could not reach server: %v", err)
		}
		if resp.IsError() {
			fail("create failed: %s %s", resp.Status(), resp.String())
		}

		if output == "json" {
			printJSON(result)
			return
		}
		fmt.Println("Reply created.")
	},
}
