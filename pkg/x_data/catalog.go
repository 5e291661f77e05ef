// file:fpmine/pkg/x_data/catalog.go
package x_data

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rskv-p/fpmine/constant"
)

//---------------------
// Dataset
//---------------------

// Dataset describes one delimited data file and the attribute names paired
// with its columns.
type Dataset struct {
	ID         int      `json:"id" mapstructure:"id"`
	Name       string   `json:"name" mapstructure:"name"`
	Title      string   `json:"title" mapstructure:"title"`
	File       string   `json:"file" mapstructure:"file"`
	Attributes []string `json:"attributes" mapstructure:"attributes"`
}

// Path resolves the dataset file against dir.
func (d Dataset) Path(dir string) string {
	if filepath.IsAbs(d.File) || dir == "" {
		return d.File
	}
	return filepath.Join(dir, d.File)
}

// builtin is the stock UCI catalog.
var builtin = []Dataset{
	{ID: 1, Name: "skin", Title: "Skin Segmentation", File: "skin_segmentation.data",
		Attributes: []string{"B", "G", "R", "Y"}},
	{ID: 2, Name: "adult", Title: "Adult", File: "adult.data",
		Attributes: []string{"age", "workclass", "fnlwgt", "education", "education-num", "marital-status",
			"occupation", "relationship", "race", "sex", "capital-gain", "capital-loss",
			"hours-per-week", "native-country", "income"}},
	{ID: 3, Name: "mushroom", Title: "Agaricus-Lepiota (Mushroom)", File: "agaricus-lepiota.data",
		Attributes: []string{"poisonous", "cap-shape", "cap-surface", "cap-color", "bruises", "odor", "gill-attachment",
			"gill-spacing", "gill-size", "gill-color", "stalk-shape", "stalk-root",
			"stalk-surface-above-ring", "stalk-surface-below-ring", "stalk-color-above-ring",
			"stalk-color-below-ring", "veil-type", "veil-color", "ring-number", "ring-type",
			"spore-print-color", "population", "habitat"}},
	{ID: 4, Name: "car", Title: "Car Evaluation", File: "car.data",
		Attributes: []string{"buying", "maint", "doors", "persons", "lug_boot", "safety", "class"}},
	{ID: 5, Name: "nursery", Title: "Nursery", File: "nursery.data",
		Attributes: []string{"parents", "has_nurs", "form", "children", "housing", "finance", "social", "health", "class"}},
	{ID: 6, Name: "letter", Title: "Letter Recognition", File: "letter-recognition.data",
		Attributes: []string{"lettr", "x-box", "y-box", "width", "high", "onpix", "x-bar",
			"y-bar", "x2bar", "y2bar", "xybar", "x2ybr", "xy2br", "x-ege",
			"xegvy", "y-ege", "yegvx"}},
	{ID: 7, Name: "chess", Title: "King-Rook vs King-Pawn (Chess)", File: "kr-vs-kp.data",
		Attributes: []string{"bkblk", "bknwy", "bkno8", "bknoa", "bkspr", "bkxbq", "bkxcr", "bkxwp",
			"blxwp", "bxqsq", "cntxt", "dsopp", "dwipd", "hdchk", "katri", "mulch",
			"qxmsq", "r2ar8", "reskd", "reskr", "rimmx", "rkxwp", "rxmsq", "simpl",
			"skach", "skewr", "skrxp", "spcop", "stlmt", "thrsk", "wkcti", "wkna8",
			"wknck", "wkovl", "wkpos", "wtoeg"}},
	{ID: 8, Name: "poker", Title: "Poker Hand Testing", File: "poker-hand-testing.dat",
		Attributes: []string{"S1", "C1", "S2", "C2", "S3", "C3", "S4", "C4", "S5", "C5", "CLASS"}},
	{ID: 9, Name: "pendigits", Title: "Pen-Based Recognition", File: "pen_based.data",
		Attributes: []string{"Attribute1", "Attribute2", "Attribute3", "Attribute4", "Attribute5", "Attribute6", "Attribute7",
			"Attribute8", "Attribute9", "Attribute10", "Attribute11", "Attribute12", "Attribute13", "Attribute14", "Attribute15",
			"Attribute16", "Class"}},
	{ID: 10, Name: "cmc", Title: "Contraceptive Method Choice (CMC)", File: "cmc.data",
		Attributes: []string{"wife_age", "wife_edu", "husband_edu", "num_children", "wife_religion", "wife_working", "husband_occupation",
			"standard_of_living_index", "media_exposure", "contraceptive_method"}},
}

// Builtin returns a copy of the stock catalog.
func Builtin() []Dataset {
	out := make([]Dataset, len(builtin))
	for i, d := range builtin {
		d.Attributes = slices.Clone(d.Attributes)
		out[i] = d
	}
	return out
}

//---------------------
// Catalog
//---------------------

// Catalog indexes datasets by number and by name.
type Catalog struct {
	mu   sync.RWMutex
	list []Dataset
}

// NewCatalog returns the stock catalog extended with extra entries.
func NewCatalog(extra ...Dataset) (*Catalog, error) {
	c := &Catalog{list: Builtin()}
	for _, d := range extra {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers d. An entry with the same name is replaced; a zero ID is
// assigned the next free number.
func (c *Catalog) Add(d Dataset) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("%w: dataset name is required", constant.ErrBadRequest)
	}
	if d.File == "" {
		return fmt.Errorf("%w: dataset %q has no file", constant.ErrBadRequest, d.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.list {
		if strings.EqualFold(c.list[i].Name, d.Name) {
			if d.ID == 0 {
				d.ID = c.list[i].ID
			}
			c.list[i] = d
			return nil
		}
	}
	if d.ID == 0 {
		for _, e := range c.list {
			d.ID = max(d.ID, e.ID)
		}
		d.ID++
	}
	c.list = append(c.list, d)
	return nil
}

// List returns the datasets ordered by number.
func (c *Catalog) List() []Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := slices.Clone(c.list)
	slices.SortFunc(out, func(a, b Dataset) int { return a.ID - b.ID })
	return out
}

// Lookup finds a dataset by number ("4") or by name ("car").
func (c *Catalog) Lookup(key string) (Dataset, error) {
	key = strings.TrimSpace(key)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if n, err := strconv.Atoi(key); err == nil {
		for _, d := range c.list {
			if d.ID == n {
				return d, nil
			}
		}
	}
	for _, d := range c.list {
		if strings.EqualFold(d.Name, key) {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("%w: %q", constant.ErrUnknownDataset, key)
}
