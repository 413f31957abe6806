// Package manifest resolves application metadata into a domain.AppManifest
// and persists it as a sidecar file next to the deployment descriptor.
//
// # Sources
//
// Metadata comes from one of two places, selected by domain.InformationSource:
//   - the project's compiled-code annotations (AssemblyInfo files declared as
//     Compile items in the project file)
//   - an existing deployment descriptor (*.application)
//
// With SourceBoth the annotations are resolved first and descriptor fields are
// laid over the result.
//
// # Usage
//
//	r := manifest.NewResolver(manifest.ResolverOptions{
//	    ProjectPath:    "src/Acme/Acme.csproj",
//	    DescriptorPath: "publish/",
//	})
//	m, err := r.Resolve(ctx, domain.SourceBoth)
//	if err != nil {
//	    return err
//	}
//	path, err := r.Persist(m)
//
// # Sidecar Format
//
// The sidecar is indented JSON at <descriptor-dir>/<descriptor-base>.cltw.
// Versions are written as dotted strings:
//
//	{
//	  "application_name": "Acme",
//	  "short_name": "Acme",
//	  "app_version": "2.1.0.0",
//	  "framework_version": "4.7.2"
//	}
//
// Load also accepts PascalCase keys such as "ApplicationName" and
// "AppVersion". A document with none of the manifest keys is rejected.
//
// # Error Handling
//
// Resolution failures are returned as *domain.ResolutionError and sidecar
// failures as *domain.PersistenceError; both wrap one of the sentinel errors
// defined here.
package manifest
