package catalog

import (
	_ "embed"
	"fmt"

	"github.com/AntonioEsper/MarketLens/internal/scoring"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const CategoryReference = "reference"

// Asset 可分析的品种及其外部数据代码
type Asset struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Yahoo       string `yaml:"yahoo" json:"yahoo,omitempty"`
	Binance     string `yaml:"binance" json:"binance,omitempty"`
	Cot         string `yaml:"cot" json:"cot,omitempty"`
	Currency    string `yaml:"currency" json:"currency"`
	TradingView string `yaml:"tradingview" json:"tradingview,omitempty"`
}

// Catalog 品种与经济指标目录
type Catalog struct {
	Assets     []Asset             `yaml:"assets"`
	Indicators []scoring.Indicator `yaml:"indicators"`

	byName map[string]Asset
}

// Default 内置目录
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.byName = make(map[string]Asset, len(c.Assets))
	for _, a := range c.Assets {
		if _, dup := c.byName[a.Name]; dup {
			return nil, fmt.Errorf("duplicate asset %q in catalog", a.Name)
		}
		c.byName[a.Name] = a
	}
	return &c, nil
}

func (c *Catalog) Asset(name string) (Asset, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Tradable 除参考序列以外的品种
func (c *Catalog) Tradable() []Asset {
	assets := make([]Asset, 0, len(c.Assets))
	for _, a := range c.Assets {
		if a.Category != CategoryReference {
			assets = append(assets, a)
		}
	}
	return assets
}

// CurrencyOf 非货币对品种的计价货币，未知品种为 USD
func (c *Catalog) CurrencyOf(asset string) string {
	if a, ok := c.byName[asset]; ok && a.Currency != "" {
		return a.Currency
	}
	return scoring.DefaultCurrency
}

// IndicatorsFor 指定货币的经济指标
func (c *Catalog) IndicatorsFor(currency string) []scoring.Indicator {
	var indicators []scoring.Indicator
	for _, i := range c.Indicators {
		if i.Currency == currency {
			indicators = append(indicators, i)
		}
	}
	return indicators
}
