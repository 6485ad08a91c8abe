// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package statement

import (
	"github.com/penny-vault/pvratios/data"
)

type Kind string

const (
	IncomeKind   Kind = "income"
	BalanceKind  Kind = "balance"
	CashFlowKind Kind = "cash-flow"
)

// Schema describes which columns are taken from one statement file
type Schema struct {
	Kind Kind `mapstructure:"kind" toml:"kind"`

	// Suffix is appended to the security code to form the file name, e.g.
	// 600585.SH_income.csv
	Suffix string `mapstructure:"suffix" toml:"suffix"`

	// Columns is the whitelist of source columns, in output order
	Columns []string `mapstructure:"columns" toml:"columns"`

	// Aliases renames source columns once they are selected
	Aliases map[string]string `mapstructure:"aliases" toml:"aliases"`
}

// Whitelist holds the schemas of the three statements of a security
type Whitelist struct {
	Income   Schema `mapstructure:"income" toml:"income"`
	Balance  Schema `mapstructure:"balance" toml:"balance"`
	CashFlow Schema `mapstructure:"cash_flow" toml:"cash_flow"`
}

// Schemas returns the three schemas in join order
func (w Whitelist) Schemas() []Schema {
	return []Schema{w.Income, w.Balance, w.CashFlow}
}

// TableName returns the name a source column has in the merged table
func (s Schema) TableName(col string) string {
	if alias, ok := s.Aliases[col]; ok {
		return alias
	}
	return col
}

// DefaultWhitelist returns the columns the ratio engine depends on plus the
// remaining headline items of each statement.
func DefaultWhitelist() Whitelist {
	return Whitelist{
		Income: Schema{
			Kind:   IncomeKind,
			Suffix: "_income",
			Columns: []string{
				data.TotalRevenue,
				data.TotalOperatingCost,
				data.OperatingProfit,
				data.TotalProfit,
				data.OperatingCost,
				data.NetProfit,
				data.ContinuingNetProfit,
				data.SellingExpense,
				data.AdminExpense,
				data.RDExpense,
				data.FinanceExpense,
				data.InterestExpense,
				data.InterestIncome,
				data.IncomeTax,
				data.ComprehensiveIncome,
				data.BasicEPS,
				data.DilutedEPS,
			},
		},
		Balance: Schema{
			Kind:   BalanceKind,
			Suffix: "_asset",
			Columns: []string{
				data.Cash,
				data.Receivables,
				data.Prepayments,
				data.TradingFinancialAssets,
				"其他应收款（合计）",
				data.Inventory,
				data.OtherCurrentAssets,
				data.TotalCurrentAssets,
				data.LongTermReceivables,
				data.DebtInvestment,
				data.OtherDebtInvestment,
				data.LongTermEquityInvestment,
				data.InvestmentProperty,
				"固定资产（合计）",
				"在建工程（合计）",
				data.IntangibleAssets,
				data.DevelopmentExpenditure,
				data.Goodwill,
				data.TotalNonCurrentAssets,
				data.TotalAssets,
				data.ShortTermBorrowing,
				data.TotalCurrentLiabilities,
				data.LongTermBorrowing,
				data.BondsPayable,
				"长期应付款（合计）",
				data.TotalNonCurrentLiabilities,
				data.TotalLiabilities,
				data.ParentEquity,
				data.MinorityEquity,
				data.TotalEquity,
			},
			Aliases: map[string]string{
				"其他应收款（合计）": data.OtherReceivables,
				"固定资产（合计）":  data.FixedAssets,
				"在建工程（合计）":  data.ConstructionInProgress,
				"长期应付款（合计）": data.LongTermPayables,
			},
		},
		CashFlow: Schema{
			Kind:   CashFlowKind,
			Suffix: "_cash",
			Columns: []string{
				data.OperatingCashFlow,
				data.CapitalExpenditure,
				data.DisposalProceeds,
				data.InvestingCashFlow,
				data.DebtRepayment,
				data.FinancingCashFlow,
			},
		},
	}
}
