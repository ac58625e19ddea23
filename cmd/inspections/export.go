package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/infrastructure/progress"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	etatDto "fpm-inspections-core/internal/modules/inspections/etat-synthetique/dto"
	exportsServices "fpm-inspections-core/internal/modules/inspections/exports/services"
)

type exportFlags struct {
	from, to  string
	min, max  float64
	format    string
	out       string
	maskPhone bool
	page      int
	perPage   int

	// consolidé uniquement
	noActe     bool
	noRub      bool
	pharmacie  bool
	numPec     string
	nomPrenom  string
	numBnf     string
	structures []string
	sortBy     string
	sortOrder  string
	countOnly  bool
}

var (
	etatFlags          exportFlags
	consolidationFlags exportFlags
)

var etatCmd = &cobra.Command{
	Use:   "etat-synthetique",
	Short: "Export de l'état synthétique (une ligne par PEC)",
	RunE:  runEtatSynthetique,
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Export consolidé par (PEC, structure, source, libellé, montant unitaire)",
	RunE:  runConsolidate,
}

func init() {
	for _, c := range []struct {
		cmd   *cobra.Command
		flags *exportFlags
	}{{etatCmd, &etatFlags}, {consolidateCmd, &consolidationFlags}} {
		f := c.cmd.Flags()
		f.StringVar(&c.flags.from, "from", "", "Date de début AAAA-MM-JJ")
		f.StringVar(&c.flags.to, "to", "", "Date de fin AAAA-MM-JJ")
		f.Float64Var(&c.flags.min, "min", 0, "Montant minimum")
		f.Float64Var(&c.flags.max, "max", 0, "Montant maximum")
		f.StringVar(&c.flags.format, "format", exportsServices.FormatCSV, "Format: csv, json ou parquet")
		f.StringVar(&c.flags.out, "out", "-", "Fichier de sortie (- pour la sortie standard)")
		f.BoolVar(&c.flags.maskPhone, "mask-phone", false, "Masquer les numéros de téléphone")
		f.IntVar(&c.flags.page, "page", 1, "Page")
		f.IntVar(&c.flags.perPage, "per-page", 0, "Lignes par page (plafonds d'export)")
		_ = c.cmd.MarkFlagRequired("from")
		_ = c.cmd.MarkFlagRequired("to")
		rootCmd.AddCommand(c.cmd)
	}

	f := consolidateCmd.Flags()
	f.BoolVar(&consolidationFlags.noActe, "no-acte", false, "Exclure les actes")
	f.BoolVar(&consolidationFlags.noRub, "no-rub", false, "Exclure les rubriques d'hospitalisation")
	f.BoolVar(&consolidationFlags.pharmacie, "pharmacie", false, "Inclure la pharmacie")
	f.StringVar(&consolidationFlags.numPec, "num-pec", "", "Recherche sur le numéro PEC")
	f.StringVar(&consolidationFlags.nomPrenom, "nom", "", "Recherche sur le nom du bénéficiaire")
	f.StringVar(&consolidationFlags.numBnf, "num-bnf", "", "Recherche sur le numéro bénéficiaire")
	f.StringSliceVar(&consolidationFlags.structures, "structure", nil, "Identifiants de structures (répétable)")
	f.StringVar(&consolidationFlags.sortBy, "sort-by", "", "Clé de tri")
	f.StringVar(&consolidationFlags.sortOrder, "sort-order", "ASC", "ASC ou DESC")
	f.BoolVar(&consolidationFlags.countOnly, "count-only", false, "Afficher le nombre de regroupements et de pages sans exporter")
}

func runEtatSynthetique(cmd *cobra.Command, _ []string) error {
	fl := etatFlags
	req := etatDto.EtatSynthetiqueRequest{
		DateDebut:     fl.from,
		DateFin:       fl.to,
		MontantMin:    changed(cmd, "min", fl.min),
		MontantMax:    changed(cmd, "max", fl.max),
		Page:          fl.page,
		PerPage:       fl.perPage,
		MaskTelephone: fl.maskPhone,
	}

	return runExport(fl, "etat-synthetique", func(ctx context.Context, svc *exportsServices.ExportService, tracker *progress.Tracker) (*exportsServices.Dataset, error) {
		return svc.EtatSynthetique(ctx, req, tracker)
	})
}

func runConsolidate(cmd *cobra.Command, _ []string) error {
	fl := consolidationFlags
	acte, rub, pharmacie := !fl.noActe, !fl.noRub, fl.pharmacie
	req := claimsDto.FilterRequest{
		DateDebut:        fl.from,
		DateFin:          fl.to,
		MontantMin:       changed(cmd, "min", fl.min),
		MontantMax:       changed(cmd, "max", fl.max),
		IncludeActe:      &acte,
		IncludeRub:       &rub,
		IncludePharmacie: &pharmacie,
		NumPec:           fl.numPec,
		NomPrenom:        fl.nomPrenom,
		NumBnf:           fl.numBnf,
		IDStructures:     fl.structures,
		SortBy:           fl.sortBy,
		SortOrder:        fl.sortOrder,
		Page:             fl.page,
		PerPage:          fl.perPage,
		MaskTelephone:    fl.maskPhone,
	}

	if fl.countOnly {
		return runCount(cmd, req)
	}

	return runExport(fl, "consolidation", func(ctx context.Context, svc *exportsServices.ExportService, tracker *progress.Tracker) (*exportsServices.Dataset, error) {
		return svc.Consolidation(ctx, req, tracker)
	})
}

func runCount(cmd *cobra.Command, req claimsDto.FilterRequest) error {
	var svc *exportsServices.ExportService
	return withApp(func(ctx context.Context, log *zap.Logger) error {
		info, err := svc.CountConsolidation(ctx, req)
		if err != nil {
			return err
		}
		log.Info("comptage consolidé", zap.Int("regroupements", info.Total), zap.Int("pages", info.TotalPages))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "regroupements: %d\npages: %d (taille %d)\n", info.Total, info.TotalPages, info.Limit)
		return err
	}, &svc)
}

type buildFunc func(ctx context.Context, svc *exportsServices.ExportService, tracker *progress.Tracker) (*exportsServices.Dataset, error)

func runExport(fl exportFlags, name string, build buildFunc) error {
	renderer, err := exportsServices.RendererFor(fl.format)
	if err != nil {
		return err
	}

	var svc *exportsServices.ExportService
	return withApp(func(ctx context.Context, log *zap.Logger) error {
		bars := progress.NewMPBReporter(os.Stderr)
		tracker := progress.NewTracker(name, progress.Multi(bars, progress.NewLogReporter(log)))

		ds, err := build(ctx, svc, tracker)
		if err != nil {
			bars.Wait()
			return err
		}

		w, closeOut, err := output(fl.out)
		if err != nil {
			_ = tracker.Fail(ctx, progress.MilestoneMetrics, err)
			bars.Wait()
			return err
		}
		renderErr := renderer.Render(w, ds)
		if err := closeOut(); renderErr == nil {
			renderErr = err
		}
		if renderErr != nil {
			_ = tracker.Fail(ctx, progress.MilestoneMetrics, renderErr)
			bars.Wait()
			return fmt.Errorf("écriture %s: %w", fl.out, renderErr)
		}

		_ = tracker.Complete(ctx)
		bars.Wait()
		log.Info("export terminé",
			zap.String("export", ds.Name),
			zap.String("format", renderer.Extension()),
			zap.Int("lignes", len(ds.Table.Rows)),
			zap.String("sortie", fl.out))
		return nil
	}, &svc)
}

func output(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("création %s: %w", path, err)
	}
	return f, f.Close, nil
}

// changed - valeur du flag seulement s'il a été fourni
func changed(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
