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

// Statement fields as they appear in the merged table. A trailing `*` marks
// a statement total in the source data and is stripped on output.
const (
	// [Income Statement]
	TotalRevenue        = "营业总收入*"
	TotalOperatingCost  = "营业总成本*"
	OperatingProfit     = "营业利润*"
	TotalProfit         = "利润总额*"
	OperatingCost       = "营业成本"
	NetProfit           = "净利润*"
	ContinuingNetProfit = "持续经营净利润"
	SellingExpense      = "销售费用"
	AdminExpense        = "管理费用"
	RDExpense           = "研发费用"
	FinanceExpense      = "财务费用"
	InterestExpense     = "其中：利息费用"
	InterestIncome      = "减：利息收入"
	IncomeTax           = "减：所得税"
	ComprehensiveIncome = "综合收益总额*"
	BasicEPS            = "基本每股收益"
	DilutedEPS          = "稀释每股收益"

	// [Balance Sheet]
	Cash                       = "货币资金"
	Receivables                = "应收票据及应收账款"
	Prepayments                = "预付款项"
	TradingFinancialAssets     = "交易性金融资产"
	OtherReceivables           = "其他应收款"
	Inventory                  = "存货"
	OtherCurrentAssets         = "其他流动资产"
	TotalCurrentAssets         = "流动资产总计*"
	LongTermReceivables        = "长期应收款"
	DebtInvestment             = "债权投资"
	OtherDebtInvestment        = "其他债权投资"
	LongTermEquityInvestment   = "长期股权投资"
	InvestmentProperty         = "投资性房地产"
	FixedAssets                = "固定资产"
	ConstructionInProgress     = "在建工程"
	IntangibleAssets           = "无形资产"
	DevelopmentExpenditure     = "开发支出"
	Goodwill                   = "商誉"
	TotalNonCurrentAssets      = "非流动资产合计*"
	TotalAssets                = "资产总计*"
	ShortTermBorrowing         = "短期借款"
	TotalCurrentLiabilities    = "流动负债合计*"
	LongTermBorrowing          = "长期借款"
	BondsPayable               = "应付债券"
	LongTermPayables           = "长期应付款"
	TotalNonCurrentLiabilities = "非流动负债合计*"
	TotalLiabilities           = "负债合计*"
	ParentEquity               = "归属于母公司所有者权益合计*"
	MinorityEquity             = "少数股东权益"
	TotalEquity                = "所有者权益合计*"

	// [Cash Flow Statement]
	OperatingCashFlow  = "经营活动产生的现金流量净额*"
	CapitalExpenditure = "购建固定资产、无形资产和其他长期资产支付的现金"
	DisposalProceeds   = "处置固定资产、无形资产和其他长期资产收回的现金净额"
	InvestingCashFlow  = "投资活动产生的现金流量净额*"
	DebtRepayment      = "偿还债务支付的现金"
	FinancingCashFlow  = "筹资活动产生的现金流量净额*"
)

// Computed columns
const (
	EBIT                   = "息税前利润EBIT"
	GrossMargin            = "毛利率"
	OperatingMargin        = "营业利润率"
	NetMargin              = "净利率"
	EBITMargin             = "息税前利润率"
	ReturnOnEquity         = "净资产收益率"
	ReturnOnTotalAssets    = "总资产报酬率"
	CurrentRatio           = "流动比率"
	QuickRatio             = "速动比率"
	CashRatio              = "现金比率"
	DebtRatio              = "资产负债率"
	EquityMultiplier       = "权益乘数"
	InterestCoverage       = "利息保障倍数"
	FreeCashFlow           = "自由现金流量"
	CashFlowRatio          = "现金流量比率"
	DebtCoverageRatio      = "债务保障倍数率"
	FCFToOperatingCashFlow = "自由现金流与经营活动净现金流比率"
	InventoryTurnover      = "存货周转率"
	ReceivablesTurnover    = "应收账款周转率"
	FixedAssetTurnover     = "固定资产周转率"
	TotalAssetTurnover     = "总资产周转率"
	RevenueGrowth          = "营业收入增长率"
	NetProfitGrowth        = "净利润增长率"
	NetAssetGrowth         = "净资产增长率"
	TotalAssetGrowth       = "总资产增长率"
	FixedAssetGrowth       = "固定资产增长率"
	InventoryGrowth        = "存货增长率"
	OperatingAssets        = "经营性资产"
	OperatingLiabilities   = "经营性负债"
	NetOperatingAssets     = "经营性净资产"
	ROA                    = "资产收益率ROA"
	ROE                    = "权益收益率ROE"
	ROIC                   = "投资资本收益率ROIC"
	OperatingAssetTurnover = "经营性资产周转率"
)
