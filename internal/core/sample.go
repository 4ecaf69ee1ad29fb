package core

import (
	"context"
	"fmt"
)

// sample.go generates a demo pricing dataset so the service can be
// exercised without a real spreadsheet. The numbers imitate Swiss
// health insurance pricing: a base rate shaped by provider, age
// bracket, region, model, deductible tier and accident coverage.

type sampleProvider struct {
	name string
	code string
	base float64
}

var (
	sampleProviders = []sampleProvider{
		{"Helsana", "HEL", 1.00},
		{"CSS", "CSS", 0.95},
		{"Swica", "SWI", 1.05},
		{"Sanitas", "SAN", 0.98},
		{"Concordia", "CON", 0.92},
	}

	sampleAgeBrackets = [][2]int{
		{18, 25}, {26, 35}, {36, 45}, {46, 55}, {56, 65}, {66, 100},
	}

	sampleZipPrefixes = []string{
		"800", "801", "802", "803", "810", "820", "830", "840", "850", "860",
	}

	sampleModels = map[string]float64{
		"basic":    1.00,
		"standard": 1.15,
		"premium":  1.35,
	}

	sampleDeductibles = []int{300, 500, 1000, 1500, 2000, 2500}
)

// SampleRows builds the full cross product of demo pricing rows.
func SampleRows() []PriceRow {
	const baseMonthly = 280.0 // CHF

	var rows []PriceRow
	for _, p := range sampleProviders {
		for _, bracket := range sampleAgeBrackets {
			ageFactor := 1.0 + float64(bracket[0]-25)*0.015

			for _, zip := range sampleZipPrefixes {
				regionFactor := 0.9 + float64(zip[1]-'0')*0.02

				for _, model := range []string{"basic", "standard", "premium"} {
					modelFactor := sampleModels[model]

					for _, deductible := range sampleDeductibles {
						deductibleFactor := 1.0 - float64(deductible-300)*0.0002

						for _, accident := range []bool{false, true} {
							accidentFactor := 1.0
							if accident {
								accidentFactor = 1.10
							}

							monthly := baseMonthly * p.base * ageFactor * regionFactor * modelFactor * deductibleFactor * accidentFactor
							rows = append(rows, PriceRow{
								AgeMin:           bracket[0],
								AgeMax:           bracket[1],
								ZipPrefix:        zip,
								InsuranceModel:   model,
								Deductible:       deductible,
								AccidentCoverage: accident,
								MonthlyPremium:   Round2(monthly),
								AnnualPremium:    Round2(monthly * 12),
								ProviderName:     p.name,
								ProviderCode:     p.code,
							})
						}
					}
				}
			}
		}
	}
	return rows
}

// Seed imports the generated demo dataset and activates it.
func (s *Service) Seed(ctx context.Context) (*ImportResult, error) {
	res, err := s.ImportRows(ctx, "Demo Pricing Data", SampleRows())
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}
