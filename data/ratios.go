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
package data

import (
	"fmt"
)

type Group string

const (
	EarningsGroup      Group = "earnings"
	ProfitabilityGroup Group = "profitability"
	LiquidityGroup     Group = "liquidity"
	SolvencyGroup      Group = "solvency"
	CashFlowGroup      Group = "cash-flow"
	ReferenceGroup     Group = "reference"
	TurnoverGroup      Group = "turnover"
	GrowthGroup        Group = "growth"
	StructureGroup     Group = "structure"
	ReturnGroup        Group = "return"
)

type StepKind int

const (
	RatioStep StepKind = iota
	PeriodStartStep
	YearOverYearStep
)

// Step is a single column derivation. Ratio steps evaluate Eval against the
// table; reference steps backfill Source.
type Step struct {
	Name    string
	Group   Group
	Kind    StepKind
	Formula string
	Source  string
	Eval    func(c *Calc) Series
}

// Calc gives ratio formulas read access to a table. The first missing column
// is remembered and reported once the formula returns.
type Calc struct {
	t   *Table
	err error
}

// Col returns the named column, or a zero series if it does not exist
func (c *Calc) Col(name string) Series {
	values, err := c.t.Column(name)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return make(Series, c.t.Len())
	}
	return values
}

// Steps lists every derived column in evaluation order. Later steps may read
// columns written by earlier ones; nothing reads a column before its step.
var Steps = []Step{
	ratio(EBIT, EarningsGroup, "利润总额 + 利息费用", func(c *Calc) Series {
		return c.Col(TotalProfit).Add(c.Col(InterestExpense))
	}),

	// profitability
	ratio(GrossMargin, ProfitabilityGroup, "(营业总收入 - 营业成本) / 营业总收入", func(c *Calc) Series {
		return c.Col(TotalRevenue).Sub(c.Col(OperatingCost)).Div(c.Col(TotalRevenue))
	}),
	ratio(OperatingMargin, ProfitabilityGroup, "营业利润 / 营业总收入", func(c *Calc) Series {
		return c.Col(OperatingProfit).Div(c.Col(TotalRevenue))
	}),
	ratio(NetMargin, ProfitabilityGroup, "净利润 / 营业总收入", func(c *Calc) Series {
		return c.Col(NetProfit).Div(c.Col(TotalRevenue))
	}),
	ratio(EBITMargin, ProfitabilityGroup, "息税前利润 / 营业总收入", func(c *Calc) Series {
		return c.Col(EBIT).Div(c.Col(TotalRevenue))
	}),
	ratio(ReturnOnEquity, ProfitabilityGroup, "净利润 / 所有者权益合计", func(c *Calc) Series {
		return c.Col(NetProfit).Div(c.Col(TotalEquity))
	}),
	ratio(ReturnOnTotalAssets, ProfitabilityGroup, "净利润 / 资产总计", func(c *Calc) Series {
		return c.Col(NetProfit).Div(c.Col(TotalAssets))
	}),

	// liquidity
	ratio(CurrentRatio, LiquidityGroup, "流动资产总计 / 流动负债合计", func(c *Calc) Series {
		return c.Col(TotalCurrentAssets).Div(c.Col(TotalCurrentLiabilities))
	}),
	ratio(QuickRatio, LiquidityGroup, "(流动资产总计 - 存货 - 其他流动资产) / 流动负债合计", func(c *Calc) Series {
		return c.Col(TotalCurrentAssets).Sub(c.Col(Inventory)).Sub(c.Col(OtherCurrentAssets)).Div(c.Col(TotalCurrentLiabilities))
	}),
	ratio(CashRatio, LiquidityGroup, "(货币资金 + 交易性金融资产) / 流动负债合计", func(c *Calc) Series {
		return c.Col(Cash).Add(c.Col(TradingFinancialAssets)).Div(c.Col(TotalCurrentLiabilities))
	}),

	// solvency
	ratio(DebtRatio, SolvencyGroup, "负债合计 / 资产总计", func(c *Calc) Series {
		return c.Col(TotalLiabilities).Div(c.Col(TotalAssets))
	}),
	ratio(EquityMultiplier, SolvencyGroup, "负债合计 / (所有者权益合计 - 少数股东权益)", func(c *Calc) Series {
		return c.Col(TotalLiabilities).Div(c.Col(TotalEquity).Sub(c.Col(MinorityEquity)))
	}),
	ratio(InterestCoverage, SolvencyGroup, "息税前利润 / 利息费用", func(c *Calc) Series {
		return c.Col(EBIT).Div(c.Col(InterestExpense))
	}),

	// cash flow
	ratio(FreeCashFlow, CashFlowGroup, "经营活动现金流量净额 - (购建长期资产支付的现金 - 处置长期资产收回的现金净额)", func(c *Calc) Series {
		return c.Col(OperatingCashFlow).Sub(c.Col(CapitalExpenditure).Sub(c.Col(DisposalProceeds)))
	}),
	ratio(CashFlowRatio, CashFlowGroup, "经营活动现金流量净额 / 营业总收入", func(c *Calc) Series {
		return c.Col(OperatingCashFlow).Div(c.Col(TotalRevenue))
	}),
	ratio(DebtCoverageRatio, CashFlowGroup, "经营活动现金流量净额 / (流动负债合计 + 长期借款)", func(c *Calc) Series {
		return c.Col(OperatingCashFlow).Div(c.Col(TotalCurrentLiabilities).Add(c.Col(LongTermBorrowing)))
	}),
	ratio(FCFToOperatingCashFlow, CashFlowGroup, "自由现金流量 / 经营活动现金流量净额", func(c *Calc) Series {
		return c.Col(FreeCashFlow).Div(c.Col(OperatingCashFlow))
	}),

	// opening balances for the turnover ratios
	periodStart(Inventory), yearOverYear(Inventory),
	periodStart(Receivables), yearOverYear(Receivables),
	periodStart(FixedAssets), yearOverYear(FixedAssets),
	periodStart(TotalAssets), yearOverYear(TotalAssets),
	periodStart(TotalEquity), yearOverYear(TotalEquity),
	periodStart(TotalLiabilities), yearOverYear(TotalLiabilities),

	// turnover
	ratio(InventoryTurnover, TurnoverGroup, "营业成本 / 平均存货", func(c *Calc) Series {
		return c.Col(OperatingCost).Div(c.Col(Inventory).Avg(c.Col(Inventory + PeriodStartSuffix)))
	}),
	ratio(ReceivablesTurnover, TurnoverGroup, "营业总收入 / 平均应收票据及应收账款", func(c *Calc) Series {
		return c.Col(TotalRevenue).Div(c.Col(Receivables).Avg(c.Col(Receivables + PeriodStartSuffix)))
	}),
	ratio(FixedAssetTurnover, TurnoverGroup, "营业总收入 / 平均固定资产", func(c *Calc) Series {
		return c.Col(TotalRevenue).Div(c.Col(FixedAssets).Avg(c.Col(FixedAssets + PeriodStartSuffix)))
	}),
	ratio(TotalAssetTurnover, TurnoverGroup, "营业总收入 / 平均资产总计", func(c *Calc) Series {
		return c.Col(TotalRevenue).Div(c.Col(TotalAssets).Avg(c.Col(TotalAssets + PeriodStartSuffix)))
	}),

	// prior-year values for the growth ratios
	yearOverYear(TotalRevenue),
	yearOverYear(NetProfit),
	yearOverYear(TotalEquity),

	// growth
	growth(RevenueGrowth, TotalRevenue),
	growth(NetProfitGrowth, NetProfit),
	growth(NetAssetGrowth, TotalEquity),
	growth(TotalAssetGrowth, TotalAssets),
	growth(FixedAssetGrowth, FixedAssets),
	growth(InventoryGrowth, Inventory),

	// operating structure
	ratio(OperatingAssets, StructureGroup, "资产总计 - 货币资金 - 长期股权投资 - 投资性房地产", func(c *Calc) Series {
		return c.Col(TotalAssets).Sub(c.Col(Cash)).Sub(c.Col(LongTermEquityInvestment)).Sub(c.Col(InvestmentProperty))
	}),
	ratio(OperatingLiabilities, StructureGroup, "资产总计 - 短期借款 - 长期借款 - 归属于母公司所有者权益合计 - 少数股东权益", func(c *Calc) Series {
		return c.Col(TotalAssets).Sub(c.Col(ShortTermBorrowing)).Sub(c.Col(LongTermBorrowing)).Sub(c.Col(ParentEquity)).Sub(c.Col(MinorityEquity))
	}),
	ratio(NetOperatingAssets, StructureGroup, "经营性资产 - 经营性负债", func(c *Calc) Series {
		return c.Col(OperatingAssets).Sub(c.Col(OperatingLiabilities))
	}),
	periodStart(NetOperatingAssets), yearOverYear(NetOperatingAssets),

	// returns on averaged balances
	ratio(ROA, ReturnGroup, "净利润 / 平均资产总计", func(c *Calc) Series {
		return c.Col(NetProfit).Div(c.Col(TotalAssets).Avg(c.Col(TotalAssets + PeriodStartSuffix)))
	}),
	ratio(ROE, ReturnGroup, "净利润 / 平均所有者权益合计", func(c *Calc) Series {
		return c.Col(NetProfit).Div(c.Col(TotalEquity).Avg(c.Col(TotalEquity + PeriodStartSuffix)))
	}),
	ratio(ROIC, ReturnGroup, "息税前利润 × (1 - 所得税 / 利润总额) / (固定资产 + 无形资产 + 流动资产总计 - 流动负债合计 - 货币资金)", func(c *Calc) Series {
		afterTax := c.Col(EBIT).Mul(c.Col(IncomeTax).Div(c.Col(TotalProfit)).Rsub(1))
		invested := c.Col(FixedAssets).Add(c.Col(IntangibleAssets)).Add(c.Col(TotalCurrentAssets)).Sub(c.Col(TotalCurrentLiabilities)).Sub(c.Col(Cash))
		return afterTax.Div(invested)
	}),
	ratio(OperatingAssetTurnover, TurnoverGroup, "营业总收入 / 平均经营性净资产", func(c *Calc) Series {
		return c.Col(TotalRevenue).Div(c.Col(NetOperatingAssets).Avg(c.Col(NetOperatingAssets + PeriodStartSuffix)))
	}),

	// Replaces the liabilities-based equity multiplier above; the column
	// keeps its name and position.
	ratio(EquityMultiplier, ReturnGroup, "资产总计 / 平均所有者权益合计", func(c *Calc) Series {
		return c.Col(TotalAssets).Div(c.Col(TotalEquity).Avg(c.Col(TotalEquity + PeriodStartSuffix)))
	}),
}

// ComputeRatios runs every step in Steps against t
func ComputeRatios(t *Table) error {
	return Apply(t, Steps)
}

// Apply runs steps against t in order, stopping at the first error
func Apply(t *Table, steps []Step) error {
	for _, step := range steps {
		if err := step.apply(t); err != nil {
			return fmt.Errorf("compute %s: %w", step.Name, err)
		}
	}
	return nil
}

func (step Step) apply(t *Table) error {
	switch step.Kind {
	case PeriodStartStep:
		return PeriodStart(t, step.Source)
	case YearOverYearStep:
		return YearOverYear(t, step.Source)
	}

	c := &Calc{t: t}
	values := step.Eval(c)
	if c.err != nil {
		return c.err
	}
	return t.Set(step.Name, values)
}

func ratio(name string, group Group, formula string, eval func(c *Calc) Series) Step {
	return Step{Name: name, Group: group, Kind: RatioStep, Formula: formula, Eval: eval}
}

func growth(name, col string) Step {
	prior := col + YearOverYearSuffix
	return ratio(name, GrowthGroup, fmt.Sprintf("(%s - %s) / %s", col, prior, prior), func(c *Calc) Series {
		return c.Col(col).Sub(c.Col(prior)).Div(c.Col(prior))
	})
}

func periodStart(col string) Step {
	return Step{
		Name:    col + PeriodStartSuffix,
		Group:   ReferenceGroup,
		Kind:    PeriodStartStep,
		Formula: "上年末 " + col + "，上年末缺失或不大于 0 时取本期值",
		Source:  col,
	}
}

func yearOverYear(col string) Step {
	return Step{
		Name:    col + YearOverYearSuffix,
		Group:   ReferenceGroup,
		Kind:    YearOverYearStep,
		Formula: "上年同期 " + col + "，上年同期缺失或不大于 0 时取本期值",
		Source:  col,
	}
}
