package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"travelcompanion/app/companion"
	"travelcompanion/app/models"
)

// --- auth ---

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		client := newClient()
		screen, err := companion.SignUp(cmd.Context(), client, companion.NewNavigator(), email, password)
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), client.Token(), screen)
		return nil
	},
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		client := newClient()
		screen, err := companion.SignIn(cmd.Context(), client, companion.NewNavigator(), email, password)
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), client.Token(), screen)
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().Signout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func printSession(w io.Writer, token string, screen companion.Screen) {
	fmt.Fprintf(w, "Signed in, next screen: %s\n", screen)
	fmt.Fprintf(w, "export COMPANION_TOKEN=%s\n", token)
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or create your traveller profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := newClient().Profile(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Email: %s\n", profile.Email)
		for _, line := range companion.FormatMatch(models.NewMatchResult(*profile)) {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or update your traveller profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		form := companion.ProfileForm{}
		form.FirstName, _ = flags.GetString("first-name")
		form.LastName, _ = flags.GetString("last-name")
		form.Age, _ = flags.GetString("age")
		form.Gender, _ = flags.GetString("gender")
		form.Language, _ = flags.GetString("language")
		form.Hobbies, _ = flags.GetString("hobbies")
		form.Bio, _ = flags.GetString("bio")
		form.Country, _ = flags.GetString("country")
		form.State, _ = flags.GetString("state")
		form.City, _ = flags.GetString("city")

		if token == "" {
			return errors.New("not signed in: pass --token or set COMPANION_TOKEN")
		}
		nav := companion.ResumeSession(companion.Session{Token: token})
		if _, err := companion.SubmitProfile(cmd.Context(), newClient(), nav, form); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile saved, next screen: %s\n", nav.Current())
		return nil
	},
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find travellers by location and date",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var c models.SearchCriteria
		c.Location, _ = flags.GetString("location")
		c.Date, _ = flags.GetString("date")
		c.Gender, _ = flags.GetString("gender")
		c.Age, _ = flags.GetString("age")
		c.Language, _ = flags.GetString("language")

		screen := companion.NewSearchScreen(newClient(), func() bool { return token != "" })
		screen.SetCriteria(c)
		screen.Search(cmd.Context())

		state := screen.State()
		out := cmd.OutOrStdout()
		if state.Alert != nil {
			fmt.Fprintf(out, "%s: %s\n", state.Alert.Title, state.Alert.Message)
			if *state.Alert != companion.AlertNoMatches {
				return errors.New(state.Alert.Message)
			}
			return nil
		}
		for i, m := range state.Matches {
			if i > 0 {
				fmt.Fprintln(out)
			}
			for _, line := range companion.FormatMatch(m) {
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the dates of your past searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := newClient().SearchHistory(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range history.Dates {
			fmt.Fprintln(out, d)
		}
		return nil
	},
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the travel assistant",
	Long: `Chat with the travel assistant.

With a message argument one reply is printed. Without arguments each line
read from stdin is sent in turn until EOF.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		screen := companion.NewChatScreen(newClient())
		out := cmd.OutOrStdout()

		send := func(text string) {
			before := len(screen.State().Messages)
			screen.SetDraft(text)
			screen.Send(cmd.Context())

			// Blank drafts add nothing, so only print a reply this send produced
			msgs := screen.State().Messages
			if len(msgs) > before && msgs[0].Sender == models.SenderAI {
				fmt.Fprintf(out, "ai> %s\n", msgs[0].Text)
			}
		}

		if len(args) > 0 {
			send(strings.Join(args, " "))
			return nil
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			send(scanner.Text())
		}
		return scanner.Err()
	},
}

var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "Generate a travel itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		start, _ := flags.GetString("start")
		end, _ := flags.GetString("end")
		interests, _ := flags.GetString("interests")
		budget, _ := flags.GetString("budget")

		itinerary, err := newClient().GenerateItinerary(cmd.Context(), models.ItineraryRequest{
			TravelDates: &models.TravelDates{Start: start, End: end},
			Interests:   models.FlexString(interests),
			Budget:      models.FlexString(budget),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), itinerary)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, signinCmd} {
		c.Flags().String("email", "", "account email")
		c.Flags().String("password", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}

	f := profileCreateCmd.Flags()
	f.String("first-name", "", "first name")
	f.String("last-name", "", "last name")
	f.String("age", "", "age, 18 to 120")
	f.String("gender", "", "gender")
	f.String("language", "", "spoken language")
	f.String("hobbies", "", "hobbies")
	f.String("bio", "", "short bio")
	f.String("country", "", "country")
	f.String("state", "", "state or region")
	f.String("city", "", "city")
	profileCmd.AddCommand(profileCreateCmd)

	f = searchCmd.Flags()
	f.String("location", "", "city to search in (required)")
	f.String("date", "", "travel date (required)")
	f.String("gender", "", "gender filter")
	f.String("age", "", "exact age filter")
	f.String("language", "", "language filter")

	f = itineraryCmd.Flags()
	f.String("start", "", "where the trip starts")
	f.String("end", "", "where the trip ends")
	f.String("interests", "", "traveller interests")
	f.String("budget", "", "trip budget")
}
