package app

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// CategoryList список категорий для подстановки числовых меток.
type CategoryList struct {
	names []string
}

// NewCategoryList создаёт список из готовых имён.
func NewCategoryList(names ...string) *CategoryList {
	return &CategoryList{names: names}
}

// ParseCategories разбирает список: по имени на строку, пустые строки отбрасываются.
func ParseCategories(text string, sorted bool) []string {
	var names []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if sorted {
		sort.Strings(names)
	}
	return names
}

// LoadFile заменяет список содержимым файла. При ошибке прежний список остаётся.
func (c *CategoryList) LoadFile(path string, sorted bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read category file: %w", err)
	}
	c.names = ParseCategories(string(data), sorted)
	return nil
}

// Names копия списка категорий.
func (c *CategoryList) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Resolve переводит числовую метку в имя категории. Прочие метки возвращаются как есть.
func (c *CategoryList) Resolve(label string) string {
	if c == nil {
		return label
	}
	i, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || i < 0 || i >= len(c.names) {
		return label
	}
	return c.names[i]
}
