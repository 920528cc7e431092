package tripledger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
)

// ListType names one of the flat checklists kept alongside the ledger.
// Checklists are purely local: they persist through the same cache store but
// never sync to the remote store.
type ListType string

const (
	PrepList     ListType = "prep"
	LuggageList  ListType = "luggage"
	ShoppingList ListType = "shopping"
)

// ParseListType parses a string into a ListType.
func ParseListType(s string) (ListType, error) {
	switch ListType(s) {
	case PrepList, LuggageList, ShoppingList:
		return ListType(s), nil
	default:
		return "", fmt.Errorf("unknown list type: %q", s)
	}
}

// LuggageCategory separates the luggage checklist into its two tabs.
type LuggageCategory string

const (
	CarryOn LuggageCategory = "carry-on"
	Checked LuggageCategory = "checked"
	General LuggageCategory = "general"
)

// ChecklistItem is one entry of a checklist.
type ChecklistItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  LuggageCategory `json:"category,omitempty"` // only used by the luggage list
	Completed bool            `json:"completed"`
	Notes     string          `json:"notes,omitempty"`
}

// ChecklistStore owns one checklist for a session, persisting the full
// sequence to its own cache namespace after every mutation.
type ChecklistStore struct {
	cache *CacheStore
	typ   ListType
	items []ChecklistItem
}

// OpenChecklistStore loads the checklist of the given type from the data
// directory. An absent or unparseable cache seeds the list with its
// built-in defaults.
func OpenChecklistStore(dir string, typ ListType) *ChecklistStore {
	s := &ChecklistStore{cache: NewCacheStore(dir, "trip_list_"+string(typ)), typ: typ}
	content, err := s.cache.ReadAll()
	if err != nil || len(content) == 0 {
		if err != nil {
			log.Printf("warning, could not read cache %q (seeding defaults): %v", s.cache.Path(), err)
		}
		s.items = seedChecklist(typ)
		return s
	}
	items, err := decodeChecklist(bytes.NewReader(content))
	if err != nil {
		log.Printf("warning, corrupt cache %q (seeding defaults): %v", s.cache.Path(), err)
		s.items = seedChecklist(typ)
		return s
	}
	s.items = items
	return s
}

// Items returns the current entries in list order. The luggage list can be
// narrowed to one category.
func (s *ChecklistStore) Items(category LuggageCategory) []ChecklistItem {
	if category == "" {
		return s.items
	}
	var out []ChecklistItem
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Add appends a new entry. An empty name is rejected and nothing changes.
func (s *ChecklistStore) Add(name string, category LuggageCategory) (ChecklistItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ChecklistItem{}, fmt.Errorf("item name can't be empty")
	}
	if s.typ != LuggageList {
		category = General
	} else if category == "" {
		category = Checked
	}
	item := ChecklistItem{ID: uuid.NewString(), Name: name, Category: category}
	s.items = append(s.items, item)
	return item, s.persist()
}

// Toggle flips the completed flag of the entry matching id. Unknown ids are
// a no-op.
func (s *ChecklistStore) Toggle(id string) (ChecklistItem, bool, error) {
	for i, it := range s.items {
		if it.ID == id {
			s.items[i].Completed = !it.Completed
			return s.items[i], true, s.persist()
		}
	}
	return ChecklistItem{}, false, nil
}

// Rename replaces the name of the entry matching id, keeping its position.
func (s *ChecklistStore) Rename(id, name string) (ChecklistItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ChecklistItem{}, false, fmt.Errorf("item name can't be empty")
	}
	for i, it := range s.items {
		if it.ID == id {
			s.items[i].Name = name
			return s.items[i], true, s.persist()
		}
	}
	return ChecklistItem{}, false, nil
}

// Remove deletes the entry matching id. Unknown ids are a no-op.
func (s *ChecklistStore) Remove(id string) (bool, error) {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, s.persist()
		}
	}
	return false, nil
}

func (s *ChecklistStore) persist() error {
	var buf bytes.Buffer
	for _, it := range s.items {
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("failed to marshal checklist item: %w", err)
		}
		buf.Write(append(data, '\n'))
	}
	return s.cache.WriteAll(buf.Bytes())
}

func decodeChecklist(r io.Reader) ([]ChecklistItem, error) {
	items := []ChecklistItem{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var it ChecklistItem
		if err := json.Unmarshal(line, &it); err != nil {
			return nil, fmt.Errorf("could not decode checklist line %q: %w", string(line), err)
		}
		if it.ID == "" || it.Name == "" {
			return nil, fmt.Errorf("checklist line %q is missing id or name", string(line))
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return items, nil
}

// seedChecklist returns the built-in defaults for a fresh list.
func seedChecklist(typ ListType) []ChecklistItem {
	seed := func(prefix string, category LuggageCategory, names ...string) []ChecklistItem {
		items := make([]ChecklistItem, 0, len(names))
		for i, name := range names {
			items = append(items, ChecklistItem{
				ID:       fmt.Sprintf("%s-%d", prefix, i+1),
				Name:     name,
				Category: category,
			})
		}
		return items
	}
	switch typ {
	case PrepList:
		return seed("p", General,
			"Visit Japan Web 完成",
			"海外旅遊保險投保",
			"日幣現金預兌換",
			"網卡/漫遊數據設定",
		)
	case ShoppingList:
		return seed("s", General,
			"Uniqlo 發熱衣",
			"日本限定零食",
			"藥妝 (合利他命/眼藥水)",
		)
	case LuggageList:
		carryOn := seed("co", CarryOn,
			"護照", "台灣駕照", "駕照譯本", "錢包（日幣&信用卡）", "耳機",
			"行動電源", "充電線", "充電頭", "保溫杯", "牙線棒", "護唇膏",
			"雨傘", "袖珍包面紙", "口罩", "眼藥水", "常備藥品", "手機掛繩",
		)
		checked := seed("ch", Checked,
			"浴巾毛巾", "錢包台幣", "換洗衣物（衣褲鞋襪）", "保養品", "化妝品",
			"防曬", "護髮", "牙刷牙膏", "折疊衣架", "梳子", "睡衣",
			"藥品（內外用、痠痛藥）", "牙線棒", "離子夾", "行李袋", "指甲剪",
		)
		return append(carryOn, checked...)
	default:
		return nil
	}
}
