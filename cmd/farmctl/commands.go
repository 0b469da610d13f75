package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"farmagent/internal/catalog"
	"farmagent/internal/model"
	"farmagent/internal/service"
	"farmagent/internal/utils"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	seed int64
}

type env struct {
	assistant *service.AssistantService
}

func (o *rootOptions) newEnv() (*env, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &env{
		assistant: service.NewAssistantService(service.Dependencies{
			Weather: service.NewMockWeatherProvider(cat, rand.New(rand.NewSource(seed))),
			Market:  service.NewMockMarketProvider(cat, rand.New(rand.NewSource(seed+1))),
		}),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "farmctl",
		Short:         "Ask the farmer assistant from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "seed for the simulated weather and market feeds (0 = time based)")

	root.AddCommand(
		newChatCmd(opts),
		newDiagnoseCmd(opts),
		newSuggestCmd(),
		newCropsCmd(),
		newSoilCmd(),
	)
	return root
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	var location, soil, crop string
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv()
			if err != nil {
				return err
			}
			defer e.assistant.Close()

			req := &model.ChatRequest{Message: strings.Join(args, " ")}
			if location != "" {
				req.Context.Location = &location
			}
			if soil != "" {
				req.Context.SoilType = &soil
			}
			if crop != "" {
				req.Context.KnownCrops = []string{crop}
			}

			resp, err := e.assistant.Chat(cmd.Context(), req)
			if err != nil {
				return err
			}
			return utils.WriteJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "farm location")
	cmd.Flags().StringVar(&soil, "soil", "", "soil type")
	cmd.Flags().StringVar(&crop, "crop", "", "crop currently grown")
	return cmd
}

func newDiagnoseCmd(opts *rootOptions) *cobra.Command {
	var crop string
	var symptoms []string
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Rank likely crop issues for the given symptoms",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv()
			if err != nil {
				return err
			}
			defer e.assistant.Close()

			resp, err := e.assistant.Diagnose(cmd.Context(), &model.DiagnosisRequest{Crop: crop, Symptoms: symptoms})
			if err != nil {
				return err
			}
			return utils.WriteJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&crop, "crop", "", "crop name")
	cmd.Flags().StringSliceVar(&symptoms, "symptom", nil, "observed symptom, repeatable ("+strings.Join(model.SymptomVocabulary, ", ")+")")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "suggest <intent>",
		Short:     "List follow-up suggestions for an intent",
		Args:      cobra.ExactArgs(1),
		ValidArgs: intentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := model.Intent(strings.ToLower(args[0]))
			if !intent.Valid() {
				return fmt.Errorf("unknown intent %q, want one of %s", args[0], strings.Join(intentNames(), ", "))
			}
			return utils.WriteJSON(cmd.OutOrStdout(), service.SuggestionsFor(intent))
		},
	}
}

func newCropsCmd() *cobra.Command {
	var season, query string
	cmd := &cobra.Command{
		Use:   "crops",
		Short: "Browse the crop catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			return utils.WriteJSON(cmd.OutOrStdout(), cat.FilterCrops(season, query))
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season filter (all, summer, monsoon, winter, ...)")
	cmd.Flags().StringVar(&query, "q", "", "name or scientific name search")
	return cmd
}

func newSoilCmd() *cobra.Command {
	var sample model.SoilSample
	var organic float64
	cmd := &cobra.Command{
		Use:   "soil",
		Short: "Score a soil test and list corrections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("organic") {
				sample.OrganicMatter = &organic
			}
			return utils.WriteJSON(cmd.OutOrStdout(), service.AnalyzeSoil(sample))
		},
	}
	cmd.Flags().StringVar(&sample.SoilType, "type", "", "soil type")
	cmd.Flags().Float64Var(&sample.PH, "ph", 7, "pH")
	cmd.Flags().Float64Var(&sample.Nitrogen, "n", 0, "nitrogen (ppm)")
	cmd.Flags().Float64Var(&sample.Phosphorus, "p", 0, "phosphorus (ppm)")
	cmd.Flags().Float64Var(&sample.Potassium, "k", 0, "potassium (ppm)")
	cmd.Flags().Float64Var(&organic, "organic", 0, "organic matter (%)")
	return cmd
}

func intentNames() []string {
	names := make([]string, 0, len(model.AllIntents))
	for _, i := range model.AllIntents {
		names = append(names, string(i))
	}
	return names
}
