package lookup

// Defaults returns the built-in production tables, used when no tables file
// is configured. A tables file overrides these wholesale, not per entry.
func Defaults() *Tables {
	return &Tables{
		Components: map[string]string{
			"Balakosa Rewind and Play":     "10034",
			"Ecky Dental Center":           "10000",
			"Gudang Karung Jumbo Sidoarjo": "10010",
			"Kabin Event Organizer":        "10003",
			"Karsa Studio":                 "10099",
			"Klinik Mata Bireuen":          "10101",
			"Klinik Mata Boyolali":         "10008",
			"Klinik Mata Jogja":            "10068",
			"Klinik Mata Sampang":          "10006",
			"Klinik Spesialis Langsa":      "10033",
			"Klinik Utama Gresik":          "10007",
			"Klinik Utama Sumenep":         "10005",
			"Lasik Asyik by SMEC Tebet":    "10009",
			"Nirwana Coffee Space Pamekasan": "10002",
			"Nirwana Coffee Space Sumenep":   "10001",
			"Pelita Delapan":                 "10100",
			"Qur'anic Integrated School of Muhammadiyah (QISMu)": "10004",
			"RS Mata SMEC Balikpapan": "10067",
			"Satoe Rock Steak":        "10066",
		},
		Workers: map[string]string{
			"Eka Nur Fitriawati":           "712020:b80b621a-b152-4051-816c-699d2e189d79",
			"Farah Qurrotu Aini":           "712020:d882eb3f-72b2-435a-bc7b-396ed719b33b",
			"Halimatudz Dzakiyah":          "712020:aca16589-e25b-416f-b295-fe663315a99d",
			"Moch. Farizqi Akbar":          "712020:8912680f-5119-41c5-a803-99db024c3fa0",
			"Nathaniella Dwi Arthanti":     "712020:d1149fc3-0a52-4277-a83b-3ef564cb889b",
			"Naurah Salsabiilah":           "712020:eda1e0e2-b875-4229-b7e1-c8af59da0331",
			"Noktah Inovasi Teknologi":     "712020:5f41db40-76d3-400a-a78a-df5dc433c8cc",
			"Saladin Abdul Tawaab Al Aziz": "712020:e9225fd2-2f84-41da-8a84-d68ff48f2aa0",
			"Siti Nurhayati":               "712020:c4884994-9302-4d63-bc22-513656d41516",
		},
		ContentEditors: map[string]string{
			"Klinik Mata Boyolali":           "Nathaniella Dwi Arthanti",
			"RS Mata SMEC Balikpapan":        "Nathaniella Dwi Arthanti",
			"Kabin Event Organizer":          "Nathaniella Dwi Arthanti",
			"Balakosa Rewind and Play":       "Moch. Farizqi Akbar",
			"Nirwana Coffee Space Pamekasan": "Moch. Farizqi Akbar",
			"Pelita Delapan":                 "Moch. Farizqi Akbar",
			"Klinik Mata Jogja":              "Naurah Salsabiilah",
			"Lasik Asyik by SMEC Tebet":      "Naurah Salsabiilah",
			"Klinik Mata Bireuen":            "Naurah Salsabiilah",
			"Klinik Utama Gresik":            "Naurah Salsabiilah",
			"Nirwana Coffee Space Sumenep":   "Saladin Abdul Tawaab Al Aziz",
			"Klinik Utama Sumenep":           "Saladin Abdul Tawaab Al Aziz",
			"Karsa Studio":                   "Saladin Abdul Tawaab Al Aziz",
			"Klinik Spesialis Langsa":        "Saladin Abdul Tawaab Al Aziz",
			"Klinik Mata Sampang":            "Eka Nur Fitriawati",
			"Ecky Dental Center":             "Eka Nur Fitriawati",
			"Gudang Karung Jumbo Sidoarjo":   "Eka Nur Fitriawati",
			"Satoe Rock Steak":               "Eka Nur Fitriawati",
		},
		FieldAssociates: map[string]string{
			"Gudang Karung Jumbo Sidoarjo":   "Halimatudz Dzakiyah",
			"Lasik Asyik by SMEC Tebet":      "Halimatudz Dzakiyah",
			"Klinik Mata Boyolali":           "Halimatudz Dzakiyah",
			"Klinik Spesialis Langsa":        "Halimatudz Dzakiyah",
			"RS Mata SMEC Balikpapan":        "Halimatudz Dzakiyah",
			"Klinik Mata Jogja":              "Halimatudz Dzakiyah",
			"Klinik Mata Bireuen":            "Halimatudz Dzakiyah",
			"Klinik Utama Gresik":            "Farah Qurrotu Aini",
			"Klinik Mata Sampang":            "Farah Qurrotu Aini",
			"Klinik Utama Sumenep":           "Siti Nurhayati",
			"Nirwana Coffee Space Sumenep":   "Siti Nurhayati",
			"Nirwana Coffee Space Pamekasan": "Siti Nurhayati",
			"Ecky Dental Center":             "Siti Nurhayati",
			"Balakosa Rewind and Play":       "Siti Nurhayati",
			"Kabin Event Organizer":          "Siti Nurhayati",
			"Satoe Rock Steak":               "Siti Nurhayati",
			"Karsa Studio":                   "Siti Nurhayati",
			"Pelita Delapan":                 "Siti Nurhayati",
		},
	}
}
