package planner

import (
	"fmt"
	"strings"
)

const (
	minutesUnpagedChapter = 30
	reviewChaptersPercent = 50
	reviewMinutesPerPage  = 1
)

// ChapterStrategy spreads chapters over the learning days. When any chapter
// carries a page range the work is split by pages instead of by chapter.
type ChapterStrategy struct{}

func (ChapterStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	c, ok := item.Content.(Chapters)
	if !ok || !c.complete() || len(w.Learning) == 0 {
		return nil
	}
	list := c.resolved()
	for _, ch := range list {
		if ch.HasPages() {
			return allocatePages(item, list, w, testID)
		}
	}
	return allocateChapters(item, list, w, testID)
}

func allocateChapters(item Item, list []Chapter, w Windows, testID string) []Entry {
	b := newBuilder(item, testID)
	minutes := orDefault(item.EstimatedMinutes, minutesPerChapter)
	perDay := ceilDiv(len(list), len(w.Learning))

	next := 0
	for _, day := range w.Learning {
		if next >= len(list) {
			break
		}
		end := min(next+perDay, len(list))
		names := make([]string, 0, end-next)
		nums := make([]int, 0, end-next)
		for i := next; i < end; i++ {
			names = append(names, list[i].Name)
			nums = append(nums, i+1)
		}
		e := b.learn(day, "Lees "+strings.Join(names, ", "), minutes)
		e.Chapters = nums
		next = end
	}

	b.firstReview(w, "Herhaal alle hoofdstukken", ceilPercent(minutes, reviewChaptersPercent))
	return b.out
}

// allocatePages fills each learning day with up to ceil(totalPages/days)
// pages. The quota is checked again at the start of every day and grows to
// ceil(remaining/daysLeft) when room was lost to packing whole chapters. Chapters that fit the quota are never split;
// several may share a day while room remains. Larger chapters continue
// across consecutive days. Chapters without pages in a paged list take a day
// of their own. The last learning day takes whatever is left, so every page
// is scheduled.
func allocatePages(item Item, list []Chapter, w Windows, testID string) []Entry {
	total, unpaged := 0, 0
	for _, ch := range list {
		total += ch.Pages()
		if !ch.HasPages() {
			unpaged++
		}
	}
	if total == 0 {
		return nil
	}
	b := newBuilder(item, testID)
	days := len(w.Learning)
	lastDay := days - 1

	remaining := total
	base := ceilDiv(total, max(days-unpaged, 1))
	day, used, quota := 0, 0, base
	replan := func() {
		used = 0
		free := max(days-day-unpaged, 1)
		quota = max(base, ceilDiv(remaining, free))
	}
	nextDay := func() {
		if day < lastDay {
			day++
		}
		replan()
	}

	for i, ch := range list {
		num := []int{i + 1}

		if !ch.HasPages() {
			if used > 0 {
				nextDay()
			}
			unpaged--
			e := b.learn(w.Learning[day], "Lees "+ch.Name, minutesUnpagedChapter)
			e.Chapters = num
			nextDay()
			continue
		}

		pages := ch.Pages()
		if pages <= quota {
			if used+pages > quota && day < lastDay {
				nextDay()
			}
			e := b.learn(w.Learning[day], pageText(ch, ch.PageFrom, ch.PageTo), pages*minutesPerPage)
			e.Chapters = num
			used += pages
			remaining -= pages
			if used >= quota {
				nextDay()
			}
			continue
		}

		for from := ch.PageFrom; from <= ch.PageTo; {
			to := min(from+quota-used-1, ch.PageTo)
			if day == lastDay {
				to = ch.PageTo
			}
			e := b.learn(w.Learning[day], pageText(ch, from, to), (to-from+1)*minutesPerPage)
			e.Chapters = num
			used += to - from + 1
			remaining -= to - from + 1
			from = to + 1
			if used >= quota {
				nextDay()
			}
		}
	}

	b.firstReview(w, "Herhaal alle hoofdstukken", total*reviewMinutesPerPage)
	return b.out
}

func pageText(ch Chapter, from, to int) string {
	return fmt.Sprintf("Lees %s, pag %d-%d", ch.Name, from, to)
}
