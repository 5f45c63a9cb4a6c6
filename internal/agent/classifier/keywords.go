package classifier

import "github.com/redspider/medqa/internal/agent/model"

// Question words per intent. Matching is plain substring containment.
var (
	symptomKeywords = []string{
		"症状", "表征", "现象", "症候", "表现",
		"不适", "难受", "疼痛", "痛", "酸痛", "胀痛", "反应", "感觉", "迹象", "征兆",
		"体征", "病症", "病状", "毛病", "问题", "发作", "复发", "恶化", "加重",
		"并发症", "后遗症", "副作用", "异常", "不正常", "不舒服",
	}

	foodKeywords = []string{
		"饮食", "饮用", "吃", "食", "伙食", "膳食", "喝", "菜", "忌口", "补品",
		"保健品", "食谱", "菜谱", "食用", "食物",
		"营养", "进食", "摄入", "饮食习惯", "餐", "水果", "蔬菜", "肉类", "海鲜",
		"主食", "零食", "小吃", "点心", "甜点", "禁忌", "宜吃", "能吃", "不能吃",
		"可以吃", "忌食", "禁食", "戒口", "忌讳", "营养品", "滋补品", "调理", "食补",
		"药膳", "饮料", "茶", "汤", "粥", "清淡", "辛辣", "油腻", "生冷", "配餐",
		"搭配", "料理",
	}

	drugKeywords = []string{
		"药", "药品", "用药", "胶囊", "口服液", "炎片",
		"药物", "medication", "处方", "非处方", "片剂", "颗粒", "冲剂", "糖浆", "喷雾",
		"注射", "针剂", "输液", "滴剂", "软膏", "贴剂", "中药", "西药", "汤药", "中成药",
		"消炎药", "止痛药", "退烧药", "抗生素", "服药", "吃药", "用药量", "药量", "剂量",
		"疗程", "停药", "换药", "配药", "副作用", "禁忌", "相互作用", "OTC", "处方药",
		"特效药", "常用药", "维生素", "钙片", "营养剂",
	}
)

// DefaultKeywords returns the built-in keyword lists keyed by intent.
func DefaultKeywords() map[model.Intent][]string {
	return map[model.Intent][]string{
		model.IntentSymptom: symptomKeywords,
		model.IntentFood:    foodKeywords,
		model.IntentDrug:    drugKeywords,
	}
}
