package service

import (
	"math"
	"testing"

	"BasketSense/internal/model"
)

func TestMineFrequentItemsets_Empty(t *testing.T) {
	result := MineFrequentItemsets(nil, 0.5, nil)
	if result.TotalBaskets != 0 {
		t.Fatalf("TotalBaskets = %d, want 0", result.TotalBaskets)
	}
	if len(result.Itemsets) != 0 {
		t.Fatalf("Itemsets = %d, want 0", len(result.Itemsets))
	}
}

// 10 个购物篮，6 个含 {1,2}：min_support=0.5 时 {1,2} 支持度 0.6 达标
func TestMineFrequentItemsets_ScenarioA(t *testing.T) {
	baskets := testBaskets(
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 2, 3},
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 2},
		[]model.ProductID{3, 4},
		[]model.ProductID{3, 4},
		[]model.ProductID{3, 5},
		[]model.ProductID{4, 5},
	)
	result := MineFrequentItemsets(baskets, 0.5, nil)

	if result.ItemCounts[1] != 6 || result.ItemCounts[2] != 6 {
		t.Fatalf("商品1/2计数 = %d/%d, want 6/6", result.ItemCounts[1], result.ItemCounts[2])
	}

	var pair *FrequentItemset
	for _, fs := range result.Itemsets {
		if fs.IsPair() && fs.ProductA == 1 && *fs.ProductB == 2 {
			pair = fs
		}
	}
	if pair == nil {
		t.Fatal("未找到频繁二项集 {1,2}")
	}
	if math.Abs(pair.Support-0.6) > 1e-9 {
		t.Errorf("{1,2} 支持度 = %f, want 0.6", pair.Support)
	}
	if pair.Count != 6 {
		t.Errorf("{1,2} 共现数 = %d, want 6", pair.Count)
	}
}

func TestMineFrequentItemsets_MinSupportCeil(t *testing.T) {
	// 3 个购物篮，min_support=0.5 → 阈值 ceil(1.5)=2
	baskets := testBaskets(
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 3},
		[]model.ProductID{2, 3},
	)
	result := MineFrequentItemsets(baskets, 0.5, nil)

	// 每个商品出现 2 次，全部达标；每对只共现 1 次，二项集全部被剔除
	singles, pairs := 0, 0
	for _, fs := range result.Itemsets {
		if fs.IsPair() {
			pairs++
		} else {
			singles++
		}
	}
	if singles != 3 {
		t.Errorf("频繁一项集 = %d, want 3", singles)
	}
	if pairs != 0 {
		t.Errorf("频繁二项集 = %d, want 0", pairs)
	}
}

// P1：二项集支持度不超过任一成员一项集的支持度
func TestMineFrequentItemsets_SupportMonotonicity(t *testing.T) {
	baskets := testBaskets(
		[]model.ProductID{1, 2, 3},
		[]model.ProductID{1, 2},
		[]model.ProductID{1, 3},
		[]model.ProductID{2, 3},
		[]model.ProductID{1, 2, 3},
	)
	result := MineFrequentItemsets(baskets, 0.01, nil)
	total := float64(result.TotalBaskets)
	for _, fs := range result.Itemsets {
		if !fs.IsPair() {
			continue
		}
		supportA := float64(result.ItemCounts[fs.ProductA]) / total
		supportB := float64(result.ItemCounts[*fs.ProductB]) / total
		if fs.Support > math.Min(supportA, supportB)+1e-9 {
			t.Errorf("{%d,%d} 支持度 %f 超过成员最小支持度 %f",
				fs.ProductA, *fs.ProductB, fs.Support, math.Min(supportA, supportB))
		}
	}
}

// 产出顺序：一项集按商品ID升序在前，二项集按 i<j 枚举序在后，且 ProductA < ProductB
func TestMineFrequentItemsets_Ordering(t *testing.T) {
	baskets := testBaskets(
		[]model.ProductID{3, 1, 2},
		[]model.ProductID{2, 1, 3},
	)
	var discovered []*FrequentItemset
	result := MineFrequentItemsets(baskets, 0.5, func(fs *FrequentItemset) {
		discovered = append(discovered, fs)
	})
	if len(discovered) != len(result.Itemsets) {
		t.Fatalf("回调次数 %d != 项集数 %d", len(discovered), len(result.Itemsets))
	}

	wantSingles := []model.ProductID{1, 2, 3}
	for i, want := range wantSingles {
		if result.Itemsets[i].IsPair() || result.Itemsets[i].ProductA != want {
			t.Fatalf("第 %d 个项集 = %+v, want 一项集 %d", i, result.Itemsets[i], want)
		}
	}
	for _, fs := range result.Itemsets[len(wantSingles):] {
		if !fs.IsPair() {
			t.Fatalf("一项集出现在二项集之后: %+v", fs)
		}
		if fs.ProductA >= *fs.ProductB {
			t.Errorf("二项集未按 ProductA < ProductB 规范排序: {%d,%d}", fs.ProductA, *fs.ProductB)
		}
	}
}
