package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/placementlabs/cpms/internal/reports"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Placement reports on the terminal",
	}

	cmd.AddCommand(newReportStatsCmd())
	cmd.AddCommand(newReportBranchesCmd())
	cmd.AddCommand(newReportCompaniesCmd())
	cmd.AddCommand(newReportStudentsCmd())
	return cmd
}

func newReportStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Overall placement statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			stats, err := reports.Dashboard(gormDB)
			if err != nil {
				return err
			}

			color.Cyan("\nPlacement Statistics")
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Metric", "Value"})
			table.Append([]string{"Total Students", strconv.FormatInt(stats.TotalStudents, 10)})
			table.Append([]string{"Students Placed", strconv.FormatInt(stats.TotalPlaced, 10)})
			table.Append([]string{"Placement Rate", fmt.Sprintf("%.1f%%", stats.PlacementRate)})
			table.Append([]string{"Highest CTC", fmt.Sprintf("%.2f LPA", stats.HighestCTC)})
			table.Append([]string{"Average CTC", fmt.Sprintf("%.2f LPA", stats.AvgCTC)})
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	return cmd
}

func newReportBranchesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Placed students per branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			rows, err := reports.BranchPlacements(gormDB)
			if err != nil {
				return err
			}

			color.Yellow("\nPlacements by Branch")
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Branch", "Students Placed"})
			for _, row := range rows {
				table.Append([]string{row.Name, strconv.Itoa(row.Value)})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	return cmd
}

func newReportCompaniesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Selected candidates per company drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			rows, err := reports.CompanySelections(gormDB)
			if err != nil {
				return err
			}

			color.Yellow("\nSelections by Company")
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Company", "Candidates Selected"})
			for _, row := range rows {
				table.Append([]string{row.Name, strconv.Itoa(row.Value)})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	return cmd
}

func newReportStudentsCmd() *cobra.Command {
	var (
		configPath string
		csvPath    string
	)

	cmd := &cobra.Command{
		Use:   "students",
		Short: "Full student placement export",
		Long:  "Lists every student with their offers. With --csv, writes the full export to a CSV file instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			rows, err := reports.ExportStudents(gormDB)
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := writeStudentsCSV(csvPath, rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d students to %s\n", len(rows), csvPath)
				return nil
			}

			color.Yellow("\nStudent Placement Export")
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Enrollment", "Name", "Branch", "CGPA", "Offers", "Companies", "Highest CTC"})
			for _, row := range rows {
				table.Append([]string{
					row.EnrollmentNumber,
					row.FirstName + " " + row.LastName,
					row.Branch,
					fmt.Sprintf("%.2f", row.CGPA),
					strconv.Itoa(row.TotalOffers),
					row.Companies,
					fmt.Sprintf("%.2f", row.HighestCTC),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the export to this CSV file")
	return cmd
}

var csvHeader = []string{
	"Enrollment Number", "First Name", "Last Name", "Email", "Phone", "Gender",
	"Branch", "CGPA", "10th %", "12th %", "Active Backlogs", "Total Offers",
	"Companies Selected", "Highest CTC Secured",
}

func writeStudentsCSV(path string, rows []reports.ExportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.EnrollmentNumber,
			row.FirstName,
			row.LastName,
			row.Email,
			row.Phone,
			row.Gender,
			row.Branch,
			fmt.Sprintf("%.2f", row.CGPA),
			fmt.Sprintf("%.2f", row.TenthPercent),
			fmt.Sprintf("%.2f", row.TwelfthPercent),
			row.ActiveBacklogs,
			strconv.Itoa(row.TotalOffers),
			row.Companies,
			fmt.Sprintf("%.2f", row.HighestCTC),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
