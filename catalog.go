package fundsim

import (
	"fmt"
	"strings"
	"unicode"
)

// Fund is an entry of the fund catalog.
//
// The Symbol is the market ticker and is also the fund id used across the
// module.
type Fund struct {
	Symbol      string `json:"simbolo"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// FileName returns the name of the file holding the fund's history in a data
// directory: "<symbol>_<name>.json", both sanitized.
func (f Fund) FileName() string {
	return SanitizeFilename(f.Symbol) + "_" + SanitizeFilename(f.Name) + ".json"
}

func (f Fund) String() string { return fmt.Sprintf("%s (%s)", f.Name, f.Symbol) }

// SanitizeFilename replaces every character that is neither a letter, a
// digit, an underscore nor a white space by an underscore, then every
// space by an underscore.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ', r == '_':
			return '_'
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		default:
			return '_'
		}
	}, s)
}

// Catalog is the list of funds available for analysis.
var Catalog = []Fund{
	{"CN", "AZ China", "Tracks the performance of the Chinese stock market."},
	{"TW", "AZ MSCI Taiwan Index Fund", "Indexed on the MSCI Taiwan index, tracks the largest companies of Taiwan."},
	{"RU2K.L", "AZ Russell 2000", "Tracks the Russell 2000 index of small US companies."},
	{"BR", "AZ Brasil", "Invests in the Brazilian stock market to benefit from the country's economic growth."},
	{"EWU", "AZ MSCI United Kingdom", "Tracks the MSCI United Kingdom index of British companies."},
	{"^DJUSFN", "AZ DJ US Financial Sector", "Tracks the US financial sector as represented by the Dow Jones US Financial index."},
	{"BKF", "AZ BRIC", "Invests in the emerging markets of Brazil, Russia, India and China."},
	{"EWY", "AZ MSCI South Korea Index", "Indexed on the MSCI South Korea index, tracks the South Korean market."},
	{"AGG", "AZ Barclays Aggregate", "Tracks the Barclays Aggregate index, a benchmark of the US bond market."},
	{"EEM", "AZ Mercados Emergentes", "Invests in a variety of emerging markets around the world."},
	{"EZU", "AZ MSCI EMU", "Tracks the MSCI EMU index of companies of the European Economic and Monetary Union."},
	{"FXI", "AZ FTSE/Xinhua China 25", "Tracks the FTSE/Xinhua China 25 index of the main Chinese companies."},
	{"GLD", "AZ Oro", "Tracks the value of gold as a safe haven asset."},
	{"CETETRC.MX", "AZ Latixx Mex CETETRAC", "Tracks the performance of CETES, Mexican government debt."},
	{"QQQ", "AZ QQQ Nasdaq 100", "Tracks the Nasdaq 100 index of the 100 largest US technology companies."},
	{"AAXJ", "AZ MSCI Asia Ex-Japan", "Tracks the MSCI Asia Ex-Japan index, the Asian market without Japan."},
	{"M10TRACISHRS.MX", "AZ Latixx Mex M10TRAC", "Invests in Mexican government bonds with 10 year maturities."},
	{"SHY", "AZ Barclays 1-3 Year TR", "Tracks the Barclays index of short term bonds, with 1 to 3 year maturities."},
	{"ACWI", "AZ MSCI ACWI Index Fund", "Indexed on the MSCI ACWI, tracks companies of developed and emerging markets worldwide."},
	{"M5TRACISHRS.MX", "AZ Latixx Mex M5TRAC", "Tracks Mexican government bonds with 5 year maturities."},
	{"SLV", "AZ Silver Trust", "Invests in silver, tracking its value as a safe haven asset."},
	{"EWH", "AZ MSCI Hong Kong Index", "Tracks the MSCI Hong Kong index of the main companies of the region."},
	{"UDITRAC.MX", "AZ Latixx Mex UDITRAC", "Tracks the performance of UDIS, the Mexican investment units index."},
	{"SPY", "AZ SPDR S&P 500 ETF Trust", "Tracks the S&P 500 index of the 500 main US companies."},
	{"EWJ", "AZ MSCI Japan Index Fund", "Indexed on the MSCI Japan index, tracks the Japanese stock market."},
	{"IBGS.AS", "AZ BG EUR Govt Bond 1-3", "Invests in European government bonds with 1 to 3 year maturities."},
	{"DIA", "AZ SPDR DJIA Trust", "Tracks the Dow Jones Industrial Average, one of the main US indices."},
	{"EWQ", "AZ MSCI France Index Fund", "Tracks the MSCI France index of the main French companies."},
	{"IEO", "AZ DJ US Oil & Gas Expl", "Tracks the US oil and gas exploration sector."},
	{"VWO", "AZ Vanguard Emerging Market ETF", "Invests in emerging markets, tracking growing economies."},
	{"EWA", "AZ MSCI Australia Index", "Indexed on the MSCI Australia index, tracks the main Australian companies."},
	{"ILCTRAC.MX", "AZ IPC Large Cap T R TR", "Tracks the large capitalizations of the Mexican Stock Exchange."},
	{"XLF", "AZ Financial Select Sector SPDR", "Tracks the US financial sector through the SPDR Financial Select ETF."},
	{"EWC", "AZ MSCI Canada", "Tracks the MSCI Canada index of the main Canadian companies."},
	{"ILF", "AZ S&P Latin America 40", "Tracks the S&P Latin America 40 index of the largest Latin American companies."},
	{"XLV", "AZ Health Care Select Sector", "Tracks the US health care sector, including pharmaceutical and biotechnology companies."},
	{"EWG", "AZ MSCI Germany Index", "Tracks the MSCI Germany index of the main German companies."},
	{"ITB", "AZ DJ US Home Construct", "Tracks the US home construction sector as represented by the Dow Jones US Home Construction index."},
}

// Lookup returns the catalog entry of a fund by symbol or by name, case
// insensitive.
func Lookup(idOrName string) (Fund, bool) {
	for _, f := range Catalog {
		if strings.EqualFold(f.Symbol, idOrName) || strings.EqualFold(f.Name, idOrName) {
			return f, true
		}
	}
	return Fund{}, false
}

// Describe returns the catalog entry of a fund, or a bare entry made of
// the id when the fund is not in the catalog.
func Describe(fundID string) Fund {
	if f, ok := Lookup(fundID); ok {
		return f
	}
	return Fund{Symbol: fundID, Name: fundID}
}
