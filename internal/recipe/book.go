package recipe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mixup/internal/catalog"
	"mixup/internal/mix"
)

// Book is a YAML recipe book: a back bar of liquids and the drinks made
// from them.
//
//	liquids:
//	  - {name: Lairds Applejack, abv: 0.50}
//	drinks:
//	  - name: Jack Rose
//	    style: shaken
//	    pours:
//	      - {ingredient: Lairds Applejack, ounces: 2}
type Book struct {
	Liquids []mix.Liquid     `yaml:"liquids"`
	Drinks  []catalog.Recipe `yaml:"drinks"`
}

// LoadBook reads a recipe book from a YAML file.
func LoadBook(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe book: %w", err)
	}
	return ParseBook(data)
}

// ParseBook decodes a recipe book and checks every liquid and pour list.
func ParseBook(data []byte) (*Book, error) {
	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parsing recipe book YAML: %w", err)
	}
	for _, l := range book.Liquids {
		if err := mix.ValidateLiquid(l); err != nil {
			return nil, err
		}
	}
	for _, d := range book.Drinks {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("recipe book drink without a name")
		}
		if err := mix.ValidatePours(d.Pours); err != nil {
			return nil, fmt.Errorf("drink %q: %w", d.Name, err)
		}
	}
	return &book, nil
}

// Catalog indexes the book's liquids.
func (b *Book) Catalog() mix.Catalog {
	return mix.NewCatalog(b.Liquids...)
}

// Recipes returns the book's drinks in file order.
func (b *Book) Recipes() []catalog.Recipe {
	return append([]catalog.Recipe(nil), b.Drinks...)
}

// Drink returns the named drink, matching case-insensitively.
func (b *Book) Drink(name string) (catalog.Recipe, bool) {
	for _, d := range b.Drinks {
		if strings.EqualFold(strings.TrimSpace(d.Name), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return catalog.Recipe{}, false
}
