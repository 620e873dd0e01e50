package cli

import (
	"io"
	"sort"
	"strconv"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/simulation"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func writeStepTable(out io.Writer, report *simulation.Report) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "action", "participant", "time", "amount", "balance", "outcome"})

	for _, step := range report.Steps {
		balance := ""
		if step.Entry != nil {
			balance = step.Entry.StakingBalance.String()
		}
		table.Append([]string{
			strconv.Itoa(step.Index),
			step.Action,
			step.Participant,
			strconv.FormatUint(step.Time, 10),
			step.Amount,
			balance,
			outcome(step),
		})
	}
	table.Render()
}

func outcome(step simulation.StepResult) string {
	text := "ok"
	if step.Err != nil {
		text = step.ErrorCode.String()
	}
	if !step.Matched {
		return color.RedString("unexpected %s", text)
	}
	return color.GreenString("%s", text)
}

func writeSummaryTable(out io.Writer, report *simulation.Report) {
	participants := make([]string, 0, len(report.Entries))
	for participant := range report.Entries {
		participants = append(participants, participant)
	}
	sort.Strings(participants)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"participant", "staking balance", "state", "start time", "asset balance", "reward balance"})
	for _, participant := range participants {
		entry := report.Entries[participant]
		table.Append([]string{
			participant,
			entry.StakingBalance.String(),
			entry.State().String(),
			strconv.FormatUint(entry.StartTime, 10),
			report.AssetBalances[participant],
			report.RewardBalances[participant],
		})
	}
	table.SetFooter([]string{"", "", "", "custody " + report.CustodyBalance, "", "supply " + report.RewardSupply})
	table.Render()
}
