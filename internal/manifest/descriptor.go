package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

// DescriptorExt is the deployment descriptor file extension.
const DescriptorExt = ".application"

// LocateDescriptor accepts either a descriptor file or a directory. For a
// directory the first *.application file in lexical order is selected.
func LocateDescriptor(location string) (string, error) {
	if location == "" {
		return "", ErrDescriptorNotFound
	}

	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDescriptorNotFound, location)
		}
		return "", err
	}
	if !info.IsDir() {
		return location, nil
	}

	matches, err := filepath.Glob(filepath.Join(location, "*"+DescriptorExt))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %s file in %s", ErrDescriptorNotFound, DescriptorExt, location)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// descriptorFields is what a descriptor document declares. A nil pointer
// means the corresponding attribute or element was absent.
type descriptorFields struct {
	Product          *string
	Publisher        *string
	SuiteName        *string
	ShortName        *string
	AppVersion       *domain.Version
	FrameworkVersion *domain.Version
}

// parseDescriptor reads the description, identity and compatible-frameworks
// elements of a deployment descriptor.
func parseDescriptor(path string) (descriptorFields, error) {
	var out descriptorFields

	doc, err := parseXMLFile(path)
	if err != nil {
		return out, err
	}

	if desc := xmlquery.FindOne(doc, "//*[local-name()='description']"); desc != nil {
		out.Product = optionalAttr(desc, "product")
		out.Publisher = optionalAttr(desc, "publisher")
		out.SuiteName = optionalAttr(desc, "suiteName")
	}

	ident := xmlquery.FindOne(doc, "//*[local-name()='assemblyIdentity']")
	if ident == nil {
		return out, fmt.Errorf("%w: assemblyIdentity", ErrMissingElement)
	}
	if name, ok := attr(ident, "name"); ok {
		short := strings.Split(name, ".")[0]
		out.ShortName = &short
	}
	if raw, ok := attr(ident, "version"); ok {
		v, err := domain.ParseVersion(raw)
		if err != nil {
			return out, fmt.Errorf("assemblyIdentity version: %w", err)
		}
		out.AppVersion = &v
	}

	if frameworks := xmlquery.FindOne(doc, "//*[local-name()='compatibleFrameworks']"); frameworks != nil {
		fv, err := maxTargetVersion(frameworks)
		if err != nil {
			return out, err
		}
		out.FrameworkVersion = fv
	}

	return out, nil
}

// maxTargetVersion returns the highest targetVersion among the element
// children, ordered numerically. Nil when no child declares one.
func maxTargetVersion(frameworks *xmlquery.Node) (*domain.Version, error) {
	var best *domain.Version
	for child := frameworks.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		raw, ok := attr(child, "targetVersion")
		if !ok {
			continue
		}
		v, err := domain.ParseVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("framework targetVersion: %w", err)
		}
		if best == nil || best.Less(v) {
			best = &v
		}
	}
	return best, nil
}

func optionalAttr(n *xmlquery.Node, name string) *string {
	v, ok := attr(n, name)
	if !ok {
		return nil
	}
	return &v
}

// apply lays the declared fields over base, returning a new manifest.
func (f descriptorFields) apply(base domain.AppManifest) domain.AppManifest {
	out := base.Clone()
	if f.Product != nil {
		out.ApplicationName = *f.Product
	}
	if f.Publisher != nil {
		out.PublisherName = *f.Publisher
	}
	if f.SuiteName != nil {
		out.SuiteName = *f.SuiteName
	}
	if f.ShortName != nil {
		out.ShortName = *f.ShortName
	}
	if f.AppVersion != nil {
		v := *f.AppVersion
		out.AppVersion = &v
	}
	if f.FrameworkVersion != nil {
		v := *f.FrameworkVersion
		out.FrameworkVersion = &v
	}
	return out
}
