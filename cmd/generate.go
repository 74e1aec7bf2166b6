package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/RaikyD/tracking-number-service/internal/application"
	"github.com/RaikyD/tracking-number-service/internal/domain"
	"github.com/RaikyD/tracking-number-service/internal/repository"
)

func newGenerateCmd() *cobra.Command {
	var (
		req    domain.TrackingRequest
		weight string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the tracking number record for a single order",
		Example: `  tracking-service generate --origin MY --destination ID --weight 1.234 \
    --customer-id de619854-b59b-425e-9db4-943979e1bd49 \
    --customer-name "RedBox Logistics" --customer-slug redbox-logistics \
    --created-at 2018-11-20T19:29:32+08:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Weight = json.Number(weight)
			attrs, err := req.Attributes(time.Now)
			if err != nil {
				return err
			}

			svc := application.NewTrackingService(repository.NewShardedStore())
			rec, err := svc.GenerateTrackingNumber(attrs)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.OriginCountryID, "origin", "", "origin country code (ISO 3166-1 alpha-2)")
	f.StringVar(&req.DestinationCountryID, "destination", "", "destination country code (ISO 3166-1 alpha-2)")
	f.StringVar(&weight, "weight", "", "weight in kilograms, up to 3 decimal places")
	f.StringVar(&req.CustomerID, "customer-id", "", "customer UUID")
	f.StringVar(&req.CustomerName, "customer-name", "", "customer name")
	f.StringVar(&req.CustomerSlug, "customer-slug", "", "customer slug in kebab-case")
	f.StringVar(&req.CreatedAt, "created-at", "", "order creation time, RFC 3339 (default now)")
	return cmd
}
