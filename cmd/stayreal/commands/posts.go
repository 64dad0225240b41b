package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"stayreal/internal/domain"
)

func postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Save friends' posts to a local folder",
	}
	cmd.AddCommand(
		postsSettingsCmd(),
		postsSetCmd(),
		postsSaveCmd(),
		postsListCmd(),
		postsDeleteCmd(),
		postsStatsCmd(),
	)
	return cmd
}

func postsSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the save directory and selected friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := wire.Posts.GetSettings()
			if err != nil {
				return err
			}
			dir := s.SaveDirectory
			if dir == "" {
				dir = "(not set)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Directory: %s\n", dir)
			fmt.Fprintf(out, "Friends:   %s\n", strings.Join(s.SelectedFriends, ", "))
			fmt.Fprintf(out, "Auto-save: %t\n", s.AutoSaveEnabled)
			return nil
		},
	}
}

func postsSetCmd() *cobra.Command {
	var (
		dir      string
		friends  []string
		autoSave bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the saved-post settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := wire.Posts.SetSettings(domain.PostLogSettings{
				SaveDirectory:   dir,
				SelectedFriends: friends,
				AutoSaveEnabled: autoSave,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Post settings saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory posts are saved into")
	cmd.Flags().StringSliceVar(&friends, "friends", nil, "comma-separated user ids")
	cmd.Flags().BoolVar(&autoSave, "auto-save", false, "save selected friends' posts automatically")
	return cmd
}

func postsSaveCmd() *cobra.Command {
	var (
		c        domain.PostCapture
		caption  string
		lat, lon float64
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Download a post's images and record it",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("caption") {
				c.Caption = &caption
			}
			if flags.Changed("lat") || flags.Changed("lon") {
				c.Location = &domain.SavedLocation{Latitude: lat, Longitude: lon}
			}
			id, err := wire.Posts.SavePost(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.UserID, "user-id", "", "poster's user id")
	f.StringVar(&c.Username, "username", "", "poster's username, used as the folder name")
	f.StringVar(&c.MomentID, "moment-id", "", "moment the post belongs to")
	f.StringVar(&c.PrimaryImageURL, "primary-url", "", "URL of the primary image")
	f.StringVar(&c.SecondaryImageURL, "secondary-url", "", "URL of the secondary image")
	f.StringVar(&c.TakenAt, "taken-at", "", "when the post was taken")
	f.StringVar(&caption, "caption", "", "post caption")
	f.Float64Var(&lat, "lat", 0, "latitude")
	f.Float64Var(&lon, "lon", 0, "longitude")
	for _, name := range []string{"user-id", "username", "primary-url", "secondary-url"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func postsListCmd() *cobra.Command {
	var (
		userID string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				posts []domain.SavedPost
				err   error
			)
			if cmd.Flags().Changed("user-id") {
				posts, err = wire.Posts.SavedPostsByUser(userID)
			} else {
				posts, err = wire.Posts.SavedPosts()
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(posts)
			}
			for _, p := range posts {
				fmt.Fprintf(out, "%s  %s  %s  %s\n", p.ID, p.Username, p.MomentID, p.SavedAt)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "only posts of this user")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the posts as JSON")
	return cmd
}

func postsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved post and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Posts.DeleteSavedPost(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Post deleted")
			return nil
		},
	}
}

func postsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count saved posts per username",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := wire.Posts.Stats()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(stats))
			for name := range stats {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", name, stats[name])
			}
			return nil
		},
	}
}
