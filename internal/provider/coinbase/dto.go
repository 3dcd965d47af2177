package coinbase

type spotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
}

type historicResponse struct {
	Data struct {
		Base     string `json:"base"`
		Currency string `json:"currency"`
		Prices   []struct {
			Price string `json:"price"`
			Time  string `json:"time"`
		} `json:"prices"`
	} `json:"data"`
}

type exchangeRatesResponse struct {
	Data struct {
		Currency string            `json:"currency"`
		Rates    map[string]string `json:"rates"`
	} `json:"data"`
}

type statsResponse struct {
	Open        string `json:"open"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Last        string `json:"last"`
	Volume      string `json:"volume"`
	Volume30Day string `json:"volume_30day"`
}

type cryptoCurrenciesResponse struct {
	Data []struct {
		AssetID   string `json:"asset_id"`
		Code      string `json:"code"`
		Name      string `json:"name"`
		Color     string `json:"color"`
		SortIndex int    `json:"sort_index"`
		Exponent  int    `json:"exponent"`
		Type      string `json:"type"`
		Slug      string `json:"slug"`
	} `json:"data"`
}

type fiatCurrenciesResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		MinSize string `json:"min_size"`
	} `json:"data"`
}

type timeResponse struct {
	Data struct {
		ISO   string `json:"iso"`
		Epoch int64  `json:"epoch"`
	} `json:"data"`
}
