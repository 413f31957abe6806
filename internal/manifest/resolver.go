package manifest

import (
	"context"
	"fmt"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// Resolver produces AppManifests from a project file and/or a deployment
// descriptor, and persists them as sidecar files.
type Resolver struct {
	projectPath    string
	descriptorPath string
	logger         *utils.Logger
}

// ResolverOptions contains options for creating a Resolver
type ResolverOptions struct {
	// ProjectPath is the build project file declaring the annotation carriers
	ProjectPath string
	// DescriptorPath is a descriptor file or a directory containing one
	DescriptorPath string
	Logger         *utils.Logger
}

// NewResolver creates a new Resolver
func NewResolver(opts ResolverOptions) *Resolver {
	return &Resolver{
		projectPath:    opts.ProjectPath,
		descriptorPath: opts.DescriptorPath,
		logger:         opts.Logger,
	}
}

// Resolve builds a manifest using the selected information source.
func (r *Resolver) Resolve(ctx context.Context, source domain.InformationSource) (domain.AppManifest, error) {
	if err := ctx.Err(); err != nil {
		return domain.AppManifest{}, err
	}

	switch source {
	case domain.SourceNone:
		return domain.AppManifest{}, nil

	case domain.SourcePrimary:
		m, ok, err := r.fromAnnotations(domain.AppManifest{})
		if err != nil {
			return domain.AppManifest{}, err
		}
		if !ok {
			return domain.AppManifest{}, domain.NewResolutionError(source, r.projectPath, ErrNoAnnotationCarriers)
		}
		return m, nil

	case domain.SourceDescriptor:
		return r.fromDescriptor(domain.AppManifest{})

	case domain.SourceBoth:
		base, ok, err := r.fromAnnotations(domain.AppManifest{})
		if err != nil {
			return domain.AppManifest{}, err
		}
		if !ok && r.logger != nil {
			r.logger.Debug().
				Str("project", r.projectPath).
				Msg("No assembly info files declared, resolving from descriptor only")
		}
		if err := ctx.Err(); err != nil {
			return domain.AppManifest{}, err
		}
		return r.fromDescriptor(base)

	default:
		return domain.AppManifest{}, domain.NewResolutionError(source, "", domain.ErrUnknownSource)
	}
}

// fromAnnotations overlays annotation values onto base. The bool is false
// when the project declares no annotation carriers; base is then returned
// unchanged.
func (r *Resolver) fromAnnotations(base domain.AppManifest) (domain.AppManifest, bool, error) {
	if r.projectPath == "" {
		return base, false, domain.NewResolutionError(domain.SourcePrimary, "", ErrProjectNotFound)
	}

	ann, ok, err := ReadAnnotations(r.projectPath)
	if err != nil {
		return base, false, domain.NewResolutionError(domain.SourcePrimary, r.projectPath, err)
	}
	if !ok {
		return base, false, nil
	}

	out := base.Clone()
	out.ApplicationName = ann[attrTitle]
	out.Description = ann[attrDescription]
	out.PublisherName = ann[attrCompany]
	out.SuiteName = ann[attrProduct]
	out.Copyright = ann[attrCopyright]

	raw := ann[attrVersion]
	if raw == "" {
		raw = ann[attrFileVersion]
	}
	if raw != "" {
		v, err := domain.ParseVersion(raw)
		if err != nil {
			return base, false, domain.NewResolutionError(domain.SourcePrimary, r.projectPath, err)
		}
		out.AppVersion = &v
	}

	if r.logger != nil {
		r.logger.Debug().
			Str("project", r.projectPath).
			Int("annotations", len(ann)).
			Msg("Resolved manifest from assembly info")
	}
	return out, true, nil
}

// fromDescriptor overlays descriptor values onto base.
func (r *Resolver) fromDescriptor(base domain.AppManifest) (domain.AppManifest, error) {
	path, err := LocateDescriptor(r.descriptorPath)
	if err != nil {
		return base, domain.NewResolutionError(domain.SourceDescriptor, r.descriptorPath, err)
	}

	fields, err := parseDescriptor(path)
	if err != nil {
		return base, domain.NewResolutionError(domain.SourceDescriptor, path, err)
	}

	if r.logger != nil {
		r.logger.Debug().
			Str("descriptor", path).
			Msg("Resolved manifest from deployment descriptor")
	}
	return fields.apply(base), nil
}

// String describes the resolver's inputs.
func (r *Resolver) String() string {
	return fmt.Sprintf("resolver(project=%q, descriptor=%q)", r.projectPath, r.descriptorPath)
}
