package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

const langEnv = "MADNESS_LANG"

var (
	mu   sync.RWMutex
	lang = "en"
)

var translations = map[string]map[string]string{
	"Start":       {"sv": "Starta", "es": "Iniciar", "pt": "Iniciar"},
	"Pause":       {"sv": "Pausa", "es": "Pausa", "pt": "Pausar"},
	"Reset":       {"sv": "Återställ", "es": "Reiniciar", "pt": "Resetar"},
	"Work":        {"sv": "Jobba", "es": "Trabajo", "pt": "Trabalho"},
	"Rest":        {"sv": "Vila", "es": "Descanso", "pt": "Descanso"},
	"Done":        {"sv": "Klart", "es": "Terminado", "pt": "Concluído"},
	"Ready":       {"sv": "Redo", "es": "Listo", "pt": "Pronto"},
	"Preferences": {"sv": "Inställningar", "es": "Preferencias", "pt": "Preferências"},
	"Quit":        {"sv": "Avsluta", "es": "Salir", "pt": "Sair"},
	"Save":        {"sv": "Spara", "es": "Guardar", "pt": "Salvar"},
	"Cancel":      {"sv": "Avbryt", "es": "Cancelar", "pt": "Cancelar"},
	"Repetitions": {"sv": "Repetitioner", "es": "Repeticiones", "pt": "Repetições"},
	"Music folder": {
		"sv": "Musikmapp",
		"es": "Carpeta de música",
		"pt": "Pasta de música",
	},
	"Work (seconds)": {
		"sv": "Jobba (sekunder)",
		"es": "Trabajo (segundos)",
		"pt": "Trabalho (segundos)",
	},
	"Rest (seconds)": {
		"sv": "Vila (sekunder)",
		"es": "Descanso (segundos)",
		"pt": "Descanso (segundos)",
	},
	"Show timer":  {"sv": "Visa timer", "es": "Mostrar temporizador", "pt": "Mostrar temporizador"},
	"Music":       {"sv": "Musik", "es": "Música", "pt": "Música"},
	"Add shared link": {
		"sv": "Lägg till delad länk",
		"es": "Añadir enlace compartido",
		"pt": "Adicionar link compartilhado",
	},
}

// Detect picks the UI language. An explicit preference wins, then the
// MADNESS_LANG environment variable, then the system locale.
func Detect(preferred string) string {
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		SetLang(preferred)
		return Lang()
	}

	if forcedLang := strings.TrimSpace(os.Getenv(langEnv)); forcedLang != "" {
		log.Printf("%s is set to: '%s'", langEnv, forcedLang)
		SetLang(forcedLang)
		return Lang()
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		log.Println("could not get user locale, defaulting to english")
		SetLang("en")
		return Lang()
	}

	log.Printf("detected user locale: %s", userLocales[0])
	SetLang(userLocales[0])
	return Lang()
}

// SetLang selects a language from a locale tag such as "sv_SE" or "pt-BR".
// Unsupported languages fall back to english.
func SetLang(tag string) {
	mu.Lock()
	defer mu.Unlock()
	lang = normalize(tag)
}

// Lang returns the active language code.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates key into the active language.
func T(key string) string {
	current := Lang()
	if translated, ok := translations[key][current]; ok {
		return translated
	}
	return key
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, code := range []string{"sv", "es", "pt"} {
		if strings.HasPrefix(tag, code) {
			return code
		}
	}
	return "en"
}
