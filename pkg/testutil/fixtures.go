package testutil

import "github.com/iwvelando/visitor-stats/pkg/constants"

// SampleRanges returns a small copy of the visitor statistics workbook keyed
// by the default range names.
func SampleRanges() map[string][][]string {
	return map[string][][]string{
		constants.RangeMonthly: {
			{"月", "訪日外客数", "前年同月", "前年同月比", "前月", "前月比"},
			{"2026-01", "4,012,345", "3,987,654", "0.6", "3,765,432", "6.6"},
			{"2025-12", "3,765,432", "3,489,000", "7.9", "3,518,000", "7.0"},
			{"2025-11", "3,518,000", "3,188,000", "10.4", "3,897,000", "-9.7"},
		},
		constants.RangeCountryLatest: {
			{"月", "韓国", "中国", "台湾", "香港", "米国", "タイ", "韓国前年比", "クルーズ"},
			{"2026-01", "1,170,000", "580,000", "690,000", "240,000", "230,000", "", "19.2", "12,000"},
			{"2025-12", "1,000,000", "500,000", "600,000", "200,000", "210,000", "90,000", "10.0", "11,000"},
		},
		constants.RangeAnnual: {
			{"年", "合計", "前年比", "1位", "1位人数", "2位", "2位人数", "3位", "3位人数", "4位", "4位人数", "5位", "5位人数"},
			{"2025", "42,000,000", "15.6", "中国", "9,000,000", "韓国", "8,800,000", "台湾", "6,700,000", "米国", "3,300,000", "香港", "2,500,000"},
			{"2024", "36,869,900", "47.1", "韓国", "8,817,800", "中国", "6,981,200", "台湾", "6,044,400", "米国", "2,724,600", "香港", "2,683,500"},
		},
		constants.RangeLongTerm: {
			{"年", "訪日客数", "フェーズ"},
			{"2003", "521", "初期成長期"},
			{"2019", "3,188", "ピーク期"},
			{"2020", "412", "コロナ影響期"},
			{"2025", "4,200", "回復・成長期"},
		},
		constants.RangeSpecialNotes: {
			{"月", "内容", "国", "人数", "備考"},
			{"2025-12", "過去最高", "中国", "1,000,000", "12月として過去最高"},
			{"2026-01", "過去最高", "韓国", "1,170,000", "単月として過去最高"},
		},
		constants.RangeMonthlyByYear: {
			{"月", "2019年", "2020年", "2025年", "2026年"},
			{"1", "2,689,339", "2,661,022", "3,781,629", "4,012,345"},
			{"2", "2,604,322", "1,085,147", "3,258,000", ""},
			{"4", "2,926,685", "0", "3,908,900", ""},
		},
		constants.RangeCountryMonthly: {
			{"国", "月", "2019年", "2024年", "2025年", "2026年"},
			{"韓国", "1", "779,383", "857,000", "968,000", "1,170,000"},
			{"韓国", "2", "715,804", "818,500", "950,000", ""},
			{"台湾", "1", "388,901", "492,300", "600,000", "690,000"},
		},
		constants.RangeCountryByYear: {
			{"国", "2014年", "2019年", "2020年", "2025年", "2026年1月"},
			{"韓国", "2,755,313", "5,584,597", "487,939", "9,000,000", "1,170,000"},
			{"中国", "2,409,158", "9,594,394", "1,069,256", "9,000,000", "580,000"},
			{"ロシア", "64,077", "120,043", "", "", ""},
		},
	}
}
