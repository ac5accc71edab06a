package application

type nopMetrics struct{}

func (nopMetrics) KeysDiscovered(int) {}
func (nopMetrics) CatalogReconciled(string, string, int, int) {}
func (nopMetrics) CatalogFailed(string, string) {}
func (nopMetrics) TranslationFailed(string) {}

type nopProgress struct{}

func (nopProgress) Begin(string, int) {}
func (nopProgress) Step() {}
func (nopProgress) End() {}
