package service

import (
	"math"
	"sort"

	"BasketSense/internal/model"
)

// FrequentItemset 频繁项集（内存形态）。一项集 ProductB 为 nil；
// 二项集约定 ProductA < ProductB（按商品ID升序），避免重复对与自配对。
type FrequentItemset struct {
	ProductA model.ProductID
	ProductB *model.ProductID
	Support  float64
	Count    int
}

// IsPair 是否为二项集
func (f *FrequentItemset) IsPair() bool { return f.ProductB != nil }

// MiningResult 两遍 Apriori 的完整输出
type MiningResult struct {
	Itemsets     []*FrequentItemset
	ItemCounts   map[model.ProductID]int
	TotalBaskets int
}

// PairItemsets 仅返回二项集（规则生成的输入）
func (m *MiningResult) PairItemsets() []*FrequentItemset {
	pairs := make([]*FrequentItemset, 0, len(m.Itemsets))
	for _, fs := range m.Itemsets {
		if fs.IsPair() {
			pairs = append(pairs, fs)
		}
	}
	return pairs
}

// MineFrequentItemsets 两遍 Apriori 频率统计。
// 第一遍统计单品出现的购物篮数，筛出频繁一项集（按商品ID升序产出）；
// 第二遍对频繁一项集做 i<j 两两枚举，暴力扫描购物篮统计共现数。
// F 经一遍剪枝后远小于目录规模，O(F²·N) 的扫描在该数据量下可接受。
// onDiscovered 非空时每发现一个项集回调一次（审计落库用）。
func MineFrequentItemsets(baskets []*model.Basket, minSupport float64, onDiscovered func(*FrequentItemset)) *MiningResult {
	result := &MiningResult{
		Itemsets:     []*FrequentItemset{},
		ItemCounts:   make(map[model.ProductID]int),
		TotalBaskets: len(baskets),
	}
	if len(baskets) == 0 {
		return result
	}

	total := len(baskets)
	minSupportCount := int(math.Ceil(minSupport * float64(total)))

	// 第一遍：单品计数
	for _, b := range baskets {
		for pid := range b.Items {
			result.ItemCounts[pid]++
		}
	}

	frequent1 := make([]model.ProductID, 0, len(result.ItemCounts))
	for pid, count := range result.ItemCounts {
		if count >= minSupportCount {
			frequent1 = append(frequent1, pid)
		}
	}
	sort.Slice(frequent1, func(i, j int) bool { return frequent1[i] < frequent1[j] })

	emit := func(fs *FrequentItemset) {
		result.Itemsets = append(result.Itemsets, fs)
		if onDiscovered != nil {
			onDiscovered(fs)
		}
	}

	for _, pid := range frequent1 {
		count := result.ItemCounts[pid]
		emit(&FrequentItemset{
			ProductA: pid,
			Support:  float64(count) / float64(total),
			Count:    count,
		})
	}

	// 第二遍：频繁一项集两两共现计数
	for i := 0; i < len(frequent1); i++ {
		for j := i + 1; j < len(frequent1); j++ {
			a, b := frequent1[i], frequent1[j]
			count := 0
			for _, basket := range baskets {
				if basket.ContainsPair(a, b) {
					count++
				}
			}
			if count < minSupportCount {
				continue
			}
			second := b
			emit(&FrequentItemset{
				ProductA: a,
				ProductB: &second,
				Support:  float64(count) / float64(total),
				Count:    count,
			})
		}
	}

	return result
}
