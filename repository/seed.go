package repository

import "github.com/medidepot/medidepot/domain"

const seedDate = "17.06.2025"

// DefaultSeed is inserted on the very first start so the listing is not empty.
func DefaultSeed() []domain.Item {
	return []domain.Item{
		{Name: "Latexhandschuhe", CurrentStock: 60, MinStock: 10, Unit: "Packung", Location: "Labor", AddedDate: seedDate, OwnerCode: "MS"},
		{Name: "Mullbinde 6cm", CurrentStock: 18, MinStock: 8, Unit: "Packung", Location: "Labor", AddedDate: seedDate, OwnerCode: "AB"},
		{Name: "Desinfektionsmittel", CurrentStock: 25, MinStock: 5, Unit: "Liter", Location: "Lager A", AddedDate: seedDate, OwnerCode: "TK"},
		{Name: "Einmalspritzen 5ml", CurrentStock: 120, MinStock: 20, Unit: "Packung", Location: "Labor", AddedDate: seedDate, OwnerCode: "MS"},
		{Name: "Gelbe Kanüle", CurrentStock: 6, MinStock: 5, Unit: "Stück", Location: "Labor", AddedDate: seedDate, OwnerCode: "EG"},
		{Name: "Urbason 1000mg", CurrentStock: 3, MinStock: 2, Unit: "Stück", Location: "Medikamentenschrank", AddedDate: seedDate, OwnerCode: "EG"},
		{Name: "Mullkompresse 10x10", CurrentStock: 2, MinStock: 3, Unit: "Packung", Location: "Labor", AddedDate: seedDate, OwnerCode: "EG"},
		{Name: "Optiskin", CurrentStock: 2, MinStock: 1, Unit: "Stück", Location: "Labor", AddedDate: seedDate, OwnerCode: "EG"},
		{Name: "Leukase Puder", CurrentStock: 1, MinStock: 1, Unit: "Stück", Location: "Medikamentenschrank", AddedDate: seedDate, OwnerCode: "EG"},
		{Name: "Skalpell 15 REF", CurrentStock: 3, MinStock: 2, Unit: "Stück", Location: "Labor", AddedDate: seedDate, OwnerCode: "EG"},
	}
}

// PracticeCatalogue is the full stock list the reset tool loads into a fresh database.
func PracticeCatalogue() []domain.Item {
	item := func(name string, stock, min int, unit, location, date, owner string) domain.Item {
		return domain.Item{Name: name, CurrentStock: stock, MinStock: min, Unit: unit, Location: location, AddedDate: date, OwnerCode: owner}
	}
	return []domain.Item{
		item("Latexhandschuhe", 60, 10, "Packung", "Labor", "28.05.2025", "MS"),
		item("Mullbinde 6cm", 18, 8, "Packung", "Labor", "29.05.2025", "AB"),
		item("Desinfektionsmittel", 25, 5, "Liter", "Lager A", "30.05.2025", "TK"),
		item("Einmalspritzen 5ml", 120, 20, "Packung", "Labor", "31.05.2025", "MS"),
		item("Gelbe Kanüle", 6, 5, "Stück", "Labor", "01.06.2025", "EG"),
		item("Urbason 1000mg", 3, 2, "Stück", "Medikamentenschrank", "01.06.2025", "EG"),
		item("Xyclocain Pump", 1, 1, "Stück", "Labor", "01.06.2025", "EG"),
		item("Mullkompresse 10x10", 2, 3, "Packung", "Labor", "01.06.2025", "EG"),
		item("Optiskin", 2, 1, "Stück", "Labor", "01.06.2025", "EG"),
		item("Leukase Puder", 1, 1, "Stück", "Medikamentenschrank", "01.06.2025", "EG"),
		item("Skalpell 15 REF", 3, 2, "Stück", "Labor", "01.06.2025", "EG"),
		item("ES-Kompressen 5cmx5cm", 2, 3, "Packung", "Labor", "01.06.2025", "EG"),
		item("ALK Lancet", 2, 2, "Stück", "Labor", "01.06.2025", "EG"),
		item("DracoFixiermull", 1, 1, "Stück", "Labor", "01.06.2025", "EG"),
		item("Fixomull 10cmx10cm", 8, 3, "Stück", "Labor", "01.06.2025", "EG"),
		item("Fucidine Creme 100g", 8, 2, "Stück", "Medikamentenschrank", "01.06.2025", "EG"),
		item("Fucicort Creme 60g", 11, 3, "Stück", "Medikamentenschrank", "01.06.2025", "EG"),
		item("BetaGalen Creme 100g", 6, 2, "Stück", "Medikamentenschrank", "01.06.2025", "EG"),
		item("Leukoplast Pflaster 8cmx5m", 4, 2, "Stück", "Labor", "01.06.2025", "EG"),
		item("Leukoplast Pflaster 4cmx5m", 5, 2, "Stück", "Labor", "01.06.2025", "EG"),
		item("Leukoplast Pflaster 6cmx5m", 3, 2, "Stück", "Labor", "01.06.2025", "EG"),
	}
}
